package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/user/lcpweight/pkg/perf"
	"github.com/user/lcpweight/pkg/ports"
)

// MIMEMsgpack is the content type of msgpack bodies.
const MIMEMsgpack = "application/msgpack"

// maxEntriesBody bounds one entries post.
const maxEntriesBody = 4 << 20

type createSessionRequest struct {
	URL       string   `json:"url"`
	UserAgent string   `json:"userAgent"`
	Supported []string `json:"supported"`
}

type pushResponse struct {
	Accepted int `json:"accepted" msgpack:"accepted"`
	Total    int `json:"total" msgpack:"total"`
}

// reportListItem is one row of GET /api/reports.
type reportListItem struct {
	ID         int64   `json:"id"`
	URL        string  `json:"url"`
	CapturedAt string  `json:"capturedAt"`
	LCPTime    float64 `json:"lcpTime"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"version":  s.opts.Version,
		"sessions": s.sessions.Len(),
	})
}

func (s *Server) handleScript(c echo.Context) error {
	endpoint := s.opts.PublicURL
	if endpoint == "" {
		endpoint = c.Scheme() + "://" + c.Request().Host
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
	return c.Blob(http.StatusOK, "application/javascript; charset=utf-8",
		[]byte(BeaconScript(strings.TrimSuffix(endpoint, "/"))))
}

func (s *Server) handleListSessions(c echo.Context) error {
	return c.JSON(http.StatusOK, s.sessions.List())
}

func (s *Server) handleCreateSession(c echo.Context) error {
	var req createSessionRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid session request", err)
	}
	if req.URL == "" {
		return NewBadRequestError("url is required", nil)
	}
	if req.UserAgent == "" {
		req.UserAgent = c.Request().UserAgent()
	}

	info, err := s.sessions.Create(req.URL, req.UserAgent, req.Supported)
	if errors.Is(err, ErrTooManySessions) {
		return NewServiceUnavailableError("session limit reached")
	}
	if err != nil {
		return NewInternalError("failed to create session", err)
	}
	return c.JSON(http.StatusCreated, info)
}

func (s *Server) handlePushEntries(c echo.Context) error {
	id := c.Param("id")
	entries, err := decodeEntries(c)
	if err != nil {
		return NewBadRequestError("invalid entries", err)
	}

	total, err := s.sessions.Push(id, entries)
	if errors.Is(err, ErrSessionNotFound) {
		return NewNotFoundError("session", id)
	}
	if err != nil {
		return NewInternalError("failed to record entries", err)
	}
	return c.JSON(http.StatusAccepted, pushResponse{Accepted: len(entries), Total: total})
}

// decodeEntries reads a JSON or msgpack array of entries. msgpack bodies use
// the same field names as JSON.
func decodeEntries(c echo.Context) ([]ports.Entry, error) {
	body := io.LimitReader(c.Request().Body, maxEntriesBody)
	var entries []ports.Entry

	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), MIMEMsgpack) {
		dec := msgpack.NewDecoder(body)
		dec.SetCustomStructTag("json")
		if err := dec.Decode(&entries); err != nil {
			return nil, err
		}
		return entries, nil
	}

	if err := json.NewDecoder(body).Decode(&entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Server) handleReport(c echo.Context) error {
	id := c.Param("id")
	result, _, err := s.sessions.Result(id)
	if errors.Is(err, ErrSessionNotFound) {
		return NewNotFoundError("session", id)
	}
	if err != nil {
		return NewInternalError("failed to build report", err)
	}
	return respond(c, http.StatusOK, result.Payload())
}

func (s *Server) handleCloseSession(c echo.Context) error {
	id := c.Param("id")
	result, info, err := s.sessions.Close(id)
	if errors.Is(err, ErrSessionNotFound) {
		return NewNotFoundError("session", id)
	}
	if err != nil {
		return NewInternalError("failed to close session", err)
	}

	if s.store != nil && result.OK() {
		payload, err := json.Marshal(result.Report)
		if err != nil {
			return NewInternalError("failed to encode report", err)
		}
		if _, err := s.store.Save(c.Request().Context(), ports.StoredReport{
			URL:        info.URL,
			CapturedAt: info.LastSeen.UTC(),
			LCPTime:    result.Report.LCPTime,
			Payload:    payload,
		}); err != nil {
			s.logger.Error("Failed to store report: %v", err)
			return NewInternalError("failed to store report", err)
		}
	}

	s.logger.Debug("Session %s closed after %d entries", id, info.Entries)
	return respond(c, http.StatusOK, result.Payload())
}

func (s *Server) handleListReports(c echo.Context) error {
	if s.store == nil {
		return NewServiceUnavailableError("history is disabled")
	}

	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return NewBadRequestError("limit must be a positive integer", err)
		}
		limit = n
	}

	reports, err := s.store.List(c.Request().Context(), c.QueryParam("url"), limit)
	if err != nil {
		return NewInternalError("failed to list reports", err)
	}

	items := make([]reportListItem, 0, len(reports))
	for _, r := range reports {
		items = append(items, reportListItem{
			ID:         r.ID,
			URL:        r.URL,
			CapturedAt: r.CapturedAt.UTC().Format("2006-01-02T15:04:05Z"),
			LCPTime:    r.LCPTime,
		})
	}
	return c.JSON(http.StatusOK, items)
}

func (s *Server) handleGetReport(c echo.Context) error {
	if s.store == nil {
		return NewServiceUnavailableError("history is disabled")
	}

	idParam := c.Param("id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		return NewBadRequestError("invalid report id", err)
	}

	stored, err := s.store.Get(c.Request().Context(), id)
	if errors.Is(err, ports.ErrReportNotFound) {
		return NewNotFoundError("report", idParam)
	}
	if err != nil {
		return NewInternalError("failed to load report", err)
	}

	var report perf.WeightReport
	if err := json.Unmarshal(stored.Payload, &report); err != nil {
		return NewInternalError("stored report is corrupt", err)
	}
	return respond(c, http.StatusOK, &report)
}

// respond writes v as msgpack when the client accepts it, JSON otherwise.
func respond(c echo.Context, status int, v interface{}) error {
	if strings.Contains(c.Request().Header.Get(echo.HeaderAccept), MIMEMsgpack) {
		data, err := msgpack.Marshal(v)
		if err != nil {
			return NewInternalError("failed to encode msgpack", err)
		}
		return c.Blob(status, MIMEMsgpack, data)
	}
	return c.JSON(status, v)
}

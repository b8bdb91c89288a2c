// Package main provides localization for the lcpweight CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Break down Largest Contentful Paint into network, script and render time.": "Largest Contentful Paint をネットワーク、スクリプト、描画時間に分解します。",

		// Commands
		"Load a page in a browser and break down its LCP time.":               "ブラウザでページを読み込み、LCP 時間を分解します。",
		"Collect performance entries posted by pages and report per session.": "ページから送信されたパフォーマンスエントリを収集し、セッションごとにレポートします。",
		"List stored reports.":                                                "保存済みレポートを一覧表示します。",
		"Show version information.":                                           "バージョン情報を表示します。",

		// Global flags
		"YAML configuration file.":              "YAML設定ファイル。",
		"Log level (debug, info, warn, error).": "ログレベル（debug, info, warn, error）。",
		"Suppress all log output.":              "全てのログ出力を抑制します。",

		// Analyze command
		"URL of the page to analyze.":                                        "解析するページのURL。",
		"Report file path (.json, .yaml or .yml; default: lcp-report.json).": "レポートファイルのパス（.json, .yaml, .yml、デフォルト: lcp-report.json）。",
		"Write a breakdown chart (PNG) to this path.":                        "内訳チャート（PNG）をこのパスに書き出します。",
		"Write a Markdown summary to this path.":                             "Markdownサマリーをこのパスに書き出します。",
		"Store the report in this SQLite database.":                          "レポートをこのSQLiteデータベースに保存します。",
		"Print the report (or its error payload) to stdout as JSON.":         "レポート（またはエラー）をJSONで標準出力に表示します。",
		"Device preset (desktop, mobile).":                                   "デバイスプリセット（desktop, mobile）。",
		"Browser viewport width.":                                            "ブラウザのビューポート幅。",
		"Browser viewport height.":                                           "ブラウザのビューポート高さ。",
		"Capture timeout in seconds.":                                        "計測のタイムアウト秒数。",
		"Time to keep observing after the load event, in milliseconds.":      "load イベント後に観測を続ける時間（ミリ秒）。",
		"Number of long task groups in the report.":                          "レポートに含めるロングタスクのグループ数。",
		"Added network latency in milliseconds.":                             "追加するネットワークレイテンシ（ミリ秒）。",
		"Download speed in Mbps (0 = unlimited).":                            "ダウンロード速度（Mbps、0 = 無制限）。",
		"Upload speed in Mbps (0 = unlimited).":                              "アップロード速度（Mbps、0 = 無制限）。",
		"CPU slowdown factor (1.0 = no throttling, 4.0 = 4x slower).":        "CPUスローダウン係数（1.0 = 制限なし、4.0 = 4倍遅く）。",
		"Browser engine (chrome, playwright).":                               "ブラウザエンジン（chrome, playwright）。",
		"Run browser in non-headless mode.":                                  "ブラウザを非ヘッドレスモードで実行します。",
		"Path to Chrome executable.":                                         "Chrome実行ファイルのパス。",
		"Override the browser user agent.":                                   "ブラウザのユーザーエージェントを上書きします。",
		"Extra request header (repeatable, Name=Value).":                     "追加のリクエストヘッダー（複数指定可、Name=Value）。",
		"Ignore HTTPS certificate errors.":                                   "HTTPS証明書エラーを無視します。",
		"HTTP proxy server (e.g., http://proxy:8080).":                       "HTTPプロキシサーバー（例: http://proxy:8080）。",
		"Enable debug output.":                                               "デバッグ出力を有効化します。",
		"Directory for debug output.":                                        "デバッグ出力のディレクトリ。",

		// Serve command
		"Listen address (default: :8080).":               "待ち受けアドレス（デフォルト: :8080）。",
		"Base URL pages use to reach this server.":       "ページがこのサーバーに接続するためのベースURL。",
		"Store closed sessions in this SQLite database.": "終了したセッションをこのSQLiteデータベースに保存します。",
		"Number of long task groups in each report.":     "各レポートに含めるロングタスクのグループ数。",
		"Seconds an idle session is kept.":               "アイドル状態のセッションを保持する秒数。",

		// History command
		"SQLite database written by analyze --history or serve --history.": "analyze --history または serve --history で書き込まれたSQLiteデータベース。",
		"Only list reports for this URL.":                                  "このURLのレポートのみ表示します。",
		"Maximum number of reports to list.":                               "表示するレポートの最大数。",
		"Print the stored report with this id as JSON.":                    "このIDの保存済みレポートをJSONで表示します。",
		"No reports stored.":                                               "保存されたレポートはありません。",
		"No report with id %d":                                             "ID %d のレポートはありません",

		// Version command
		"lcpweight version %s": "lcpweight バージョン %s",

		// Summary content
		"LCP Weight Summary":         "LCP 内訳サマリー",
		"Generated At":               "生成日時",
		"Item":                       "項目",
		"Value":                      "値",
		"Page Title":                 "ページタイトル",
		"Load Complete":              "読み込み完了",
		"Timeout":                    "タイムアウト",
		"No LCP entry recorded yet.": "LCP エントリはまだ記録されていません。",
		"Breakdown":                  "内訳",
		"Phase":                      "フェーズ",
		"Time":                       "時間",
		"Share":                      "割合",
		"Network":                    "ネットワーク",
		"JS blocking":                "JSブロッキング",
		"Render delay":               "描画遅延",
		"Idle":                       "アイドル",
		"LCP Element":                "LCP 要素",
		"Tag":                        "タグ",
		"Classes":                    "クラス",
		"Text":                       "テキスト",
		"Size":                       "サイズ",
		"LCP Resource":               "LCP リソース",
		"Initiator":                  "イニシエーター",
		"Transfer Size":              "転送サイズ",
		"Fetch":                      "取得",
		"Long Tasks before LCP":      "LCP 前のロングタスク",
		"None recorded.":             "記録なし。",
		"Source":                     "発生元",
		"Duration":                   "時間",
		"Timeline":                   "タイムライン",
		"Event":                      "イベント",
		"Navigation Start":           "ナビゲーション開始",
		"Response End":               "レスポンス終了",
		"LCP Fetch Start":            "LCP 取得開始",
		"LCP Response End":           "LCP レスポンス終了",
		"Settings":                   "設定",
		"Preset":                     "プリセット",
		"Viewport Width":             "ビューポート幅",
		"CPU Throttling":             "CPUスロットリング",
		"Generated by lcpweight":     "生成: lcpweight",
	})
}

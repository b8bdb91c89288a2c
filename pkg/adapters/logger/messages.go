package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration
		"Analyzing %s":                    "%s を解析中",
		"Analyzing %s (%s preset)...":     "%s を解析中 (%s プリセット)...",
		"Analysis completed":              "解析が完了しました",
		"LCP at %s":                       "LCP: %s",
		"Report written to %s":            "レポートを %s に書き出しました",
		"Chart written to %s":             "チャートを %s に書き出しました",
		"Summary written to %s":           "サマリーを %s に書き出しました",
		"Report stored with id %d":        "レポートを ID %d で保存しました",
		"Skipping report export: %v":      "レポートの書き出しをスキップします: %v",
		"Failed to capture page: %v":      "ページの計測に失敗しました: %v",
		"Failed to export report: %v":     "レポートの書き出しに失敗しました: %v",
		"Failed to render chart: %v":      "チャートの描画に失敗しました: %v",
		"Failed to write summary: %v":     "サマリーの書き込みに失敗しました: %v",
		"Failed to store report: %v":      "レポートの保存に失敗しました: %v",
		"Interrupted, shutting down...":   "中断されました。シャットダウン中...",
		"Output saved to %s":              "出力を %s に保存しました",
		"Summary saved to %s":             "サマリーを %s に保存しました",
		"No LCP entry recorded for %s":    "%s で LCP エントリが記録されませんでした",
		"Failed to save debug output: %v": "デバッグ出力の保存に失敗しました: %v",

		"LCP %s: network %s, JS blocking %s, render delay %s, idle %s": "LCP %s: ネットワーク %s, JSブロッキング %s, 描画遅延 %s, アイドル %s",

		// Capture stage
		"Launching browser":                                                 "ブラウザを起動中",
		"Browser closed":                                                    "ブラウザを閉じました",
		"Navigating to %s":                                                  "%s へ移動中",
		"Recorded %d long tasks":                                            "%d 件のロングタスクを記録しました",
		"Setting network conditions: %d ms latency, %d bps down, %d bps up": "ネットワーク条件を設定: レイテンシ %d ms, ダウン %d bps, アップ %d bps",
		"Setting CPU throttling: %.1fx slowdown":                            "CPUスロットリングを設定: %.1f倍 減速",
		"Load event fired, settling for %d ms":                              "load イベント発火、%d ms 待機します",
		"Capture timed out after %d ms, using entries observed so far":      "%d ms でタイムアウトしました。それまでに観測したエントリを使用します",
		"Final drain failed: %v":                                            "最終取得に失敗しました: %v",
		"Capture completed in %d ms":                                        "計測が %d ms で完了しました",

		// Browsers
		"Chrome not found, installing Chromium": "Chrome が見つからないため Chromium をインストールします",
		"Browser does not support %s entries":   "ブラウザは %s エントリに対応していません",
		"Drained %d entries":                    "%d 件のエントリを取得しました",
		"Failed to close browser: %v":           "ブラウザの終了に失敗しました: %v",

		// Analyzer
		"%s observer unavailable: %v":         "%s オブザーバーが利用できません: %v",
		"Recorded %d long tasks (%d total)":   "%d 件のロングタスクを記録しました (合計 %d 件)",
		"Failed to query %s entries: %v":      "%s エントリの取得に失敗しました: %v",
		"Buffered %s entries unavailable: %v": "バッファ済みの %s エントリが利用できません: %v",

		// Chart stage
		"Rendering chart: %dx%d": "チャートを描画中: %dx%d",

		// Server
		"Listening on %s":                    "%s で待ち受け中",
		"Server stopped":                     "サーバーを停止しました",
		"Session %s started for %s":          "セッション %s を開始しました (%s)",
		"Session %s closed after %d entries": "セッション %s を終了しました (%d 件のエントリ)",
		"Removed %d idle sessions":           "アイドル状態のセッションを %d 件削除しました",
	})
}

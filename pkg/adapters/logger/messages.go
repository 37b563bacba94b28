package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Run level messages (info)
		"Starting capture run %s":         "キャプチャ実行 %s を開始します",
		"Capture run completed":           "キャプチャ実行が完了しました",
		"Output saved to %s":              "出力を %s に保存しました",
		"Interrupted, shutting down...":   "中断されました。シャットダウン中...",
		"[%d/%d] %s":                      "[%d/%d] %s",
		"Run failed at %s: %s":            "%s で実行が失敗しました: %s",
		"Stopped at %s":                   "%s で停止しました",
		"Using playback range %s-%s":      "再生範囲 %s-%s を使用します",
		"Using frame range %s-%s":         "フレーム範囲 %s-%s を使用します",
		"No reply to capture command: %s": "キャプチャコマンドの応答がありません: %s",
		"Capture acknowledged: %s":        "キャプチャが確認されました: %s",
		"Converting %s to %s":             "%s を %s に変換中",
		"Output video: %s %dx%d, %d ms":   "出力動画: %s %dx%d, %d ms",
		"Removed intermediate file %s":    "中間ファイル %s を削除しました",
		"Keeping intermediate file %s":    "中間ファイル %s を保持します",
		"Opening %s":                      "%s を開いています",
		"Summary written to %s":           "サマリーを %s に書き込みました",

		// Remote component (debug)
		"Connecting to %s":          "%s に接続中",
		"Connected to %s":           "%s に接続しました",
		"Disconnected from port %d": "ポート %d から切断しました",
		"Sending command: %s":       "コマンド送信: %s",
		"Received reply: %q":        "応答受信: %q",

		// Transcode component
		"Running encoder: %s":           "エンコーダーを実行中: %s",
		"Encoder exited with status %d": "エンコーダーが終了コード %d で終了しました",

		// Warnings
		"Input file is not accessible: %s":           "入力ファイルにアクセスできません: %s",
		"Could not inspect output video: %s":         "出力動画を検査できませんでした: %s",
		"Could not open viewer: %s":                  "ビューアーを開けませんでした: %s",
		"Could not release run lock: %s":             "実行ロックを解放できませんでした: %s",
		"Could not save settings: %s":                "設定を保存できませんでした: %s",
		"Encoder lookup failed: %s":                  "エンコーダーが見つかりませんでした: %s",
		"Could not write summary: %s":                "サマリーを書き込めませんでした: %s",
		"Could not write progress journal: %s":       "進捗ジャーナルを書き込めませんでした: %s",
		"Could not disconnect: %s":                   "切断できませんでした: %s",
		"Could not remove intermediate file %s: %s":  "中間ファイル %s を削除できませんでした: %s",
		"Keeping intermediate file %s for diagnosis": "診断のため中間ファイル %s を保持します",

		// Errors
		"Failed to connect to port %d: %s":                "ポート %d への接続に失敗しました: %s",
		"Failed to close connection on port %d: %s":       "ポート %d の接続を閉じられませんでした: %s",
		"Failed to send command %s: %s":                   "コマンド %s の送信に失敗しました: %s",
		"Failed to receive reply to %s: %s":               "%s への応答の受信に失敗しました: %s",
		"Timed out waiting for reply to %s":               "%s への応答待ちがタイムアウトしました",
		"Connection closed while waiting for reply to %s": "%s への応答待ち中に接続が閉じられました",
		"Invalid configuration: %s":                       "設定が無効です: %s",
	})
}

// Package main provides localization for the playblast CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Output":        "出力",
		"Image":         "画像",
		"Time":          "時間範囲",
		"Connection":    "接続",
		"Configuration": "設定",
		"Logging":       "ログ",

		// Root command
		"Capture viewport recordings from a running animation host":                                            "起動中のアニメーションホストからビューポートを録画",
		"playblast drives the host's command port to record the viewport, then converts the recording to MP4.": "playblastはホストのコマンドポートを介してビューポートを録画し、MP4に変換します。",

		// Global flags
		"Settings file path":                   "設定ファイルのパス",
		"Log level (debug, info, warn, error)": "ログレベル（debug, info, warn, error）",
		"Suppress all log output":              "すべてのログ出力を抑制",
		"Also write the log to this file":      "ログをこのファイルにも書き込む",

		// Capture command
		"Record the viewport and convert it to MP4":                                                               "ビューポートを録画してMP4に変換",
		"Connect to the host, record the viewport to an intermediate AVI file and convert it to MP4 with ffmpeg.": "ホストに接続し、ビューポートを中間AVIファイルに録画してffmpegでMP4に変換します。",
		"Output MP4 file path":                              "出力MP4ファイルパス",
		"Path to the ffmpeg executable":                     "ffmpeg実行ファイルのパス",
		"Open the result when done":                         "完了後に結果を開く",
		"Keep the intermediate AVI file":                    "中間AVIファイルを残す",
		"Write a Markdown run summary to this file":         "実行サマリーをMarkdownでこのファイルに書き込む",
		"Append progress events as JSON lines to this file": "進捗イベントをJSON Linesでこのファイルに追記",
		"Resolution preset name or index":                   "解像度プリセットの名前または番号",
		"Capture quality (0-100)":                           "キャプチャ品質（0-100）",
		"Capture scale (0.1-1.0)":                           "キャプチャ倍率（0.1-1.0）",
		"Frame number padding (0-4)":                        "フレーム番号の桁数（0-4）",
		"Show viewport ornaments":                           "ビューポートの装飾を表示",
		"Render offscreen":                                  "オフスクリーンで描画",
		"Clear the host cache before capturing":             "キャプチャ前にホストのキャッシュをクリア",
		"First frame (selects an explicit range)":           "開始フレーム（範囲指定モード）",
		"Last frame (selects an explicit range)":            "終了フレーム（範囲指定モード）",
		"Use the host's playback range":                     "ホストの再生範囲を使用",
		"Host command port":                                 "ホストのコマンドポート",
		"Reply timeout (negative disables)":                 "応答タイムアウト（負の値で無効）",
		"Store the given options as new defaults":           "指定したオプションを新しい既定値として保存",

		// Convert command
		"Convert an existing recording to MP4":                                                      "既存の録画をMP4に変換",
		"Run ffmpeg over a recording. Without an output the input's extension is replaced by .mp4.": "録画にffmpegを実行します。出力を省略すると入力の拡張子を.mp4に置き換えます。",
		"Delete the input after a successful conversion":                                            "変換に成功したら入力を削除",
		"convert takes an input and an optional output":                                             "convertには入力と省略可能な出力を指定します",
		"ffmpeg exited with status %d":                                                              "ffmpegがステータス %d で終了しました",

		// Remote commands
		"Check that the host's command port answers": "ホストのコマンドポートが応答するか確認",
		"Print the host's playback range":            "ホストの再生範囲を表示",
		"Connected to port %d, host version %s":      "ポート %d に接続しました。ホストのバージョン %s",

		// Config command
		"Show or change stored settings":     "保存された設定の表示と変更",
		"Print one setting":                  "設定を1つ表示",
		"Change one setting":                 "設定を1つ変更",
		"Print all settings":                 "すべての設定を表示",
		"Restore default settings":           "既定の設定に戻す",
		"Print the settings file path":       "設定ファイルのパスを表示",
		"config get takes one key":           "config getにはキーを1つ指定します",
		"config set takes a key and a value": "config setにはキーと値を指定します",
		"unknown setting %q":                 "不明な設定 %q",

		// Version command
		"Show version information": "バージョン情報を表示",
		"playblast version %s":     "playblast バージョン %s",
	})
}

// Package config builds the diarypush configuration.
//
// Every value has a built-in default, so the tool runs with no configuration
// at all. An optional INI file overrides the defaults and command-line flags
// override the file:
//
//	[diary]
//	work_dir     = /home/me/diary
//	branch       = main
//	remote       = origin
//	remote_url   = https://github.com/me/diary.git
//	note         = This is a daily diary entry. Add your thoughts or notes here!
//	strict_prune = false
//
//	[publish]
//	scan_secrets = true
//
//	[schedule]
//	at = 08:00
//
//	[log]
//	file    = /var/log/diarypush.log
//	verbose = false
//
// The resulting Config is built once by the command layer and passed
// explicitly to every component.
package config

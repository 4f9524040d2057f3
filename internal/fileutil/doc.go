// Package fileutil collects the files a batch operates on.
//
// Inputs come from command line arguments: files are taken in the order
// given and directories are scanned. Scans filter by extension and shell
// glob, skip hidden entries unless asked, and return files in natural name
// order ("img2" before "img10") so that sequence numbering follows what a
// file browser shows.
//
//	result, err := fileutil.Collect([]string{"photos/"}, fileutil.ScanOptions{
//	    Extensions: []string{".jpg", ".png"},
//	})
//	if err != nil {
//	    return err
//	}
//	rows := rename.Rename(result.Names(), op)
//
// Non-fatal errors (an unreadable subdirectory) are collected in
// ScanResult.Errors and the scan continues.
package fileutil

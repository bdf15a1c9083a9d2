//go:build !windows

package output

import "os"

// PrepareConsole is a no-op: terminals outside Windows already accept UTF-8.
func PrepareConsole(file *os.File) error {
	return nil
}

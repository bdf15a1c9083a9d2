//go:build windows

package output

import (
	"os"

	"golang.org/x/sys/windows"
)

const utf8CodePage = 65001

// PrepareConsole switches the console attached to file to the UTF-8 code page
// so the box-drawing glyphs render. Redirected output is left untouched.
func PrepareConsole(file *os.File) error {
	if file == nil {
		return nil
	}
	var consoleMode uint32
	if windows.GetConsoleMode(windows.Handle(file.Fd()), &consoleMode) != nil {
		return nil
	}
	return windows.SetConsoleOutputCP(utf8CodePage)
}

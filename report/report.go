// Package report prints short status messages to the console
package report

import (
	"os"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/pagetime/internal/osutil"
)

func Delivered(n int) {
	switch n {
	case 0:
		pterm.Info.Println("no summaries were delivered")
	case 1:
		pterm.Success.Println("1 summary delivered")
	default:
		pterm.Success.Printfln("%d summaries delivered", n)
	}
}

func NothingPending() {
	pterm.Info.Println("no summaries are waiting to be delivered")
}

func Serving(addr string) {
	pterm.Info.Printfln("development backend listening on %s (POST /api/sessions)", addr)
}

func Error(err error) {
	pterm.Error.Println(err)
}

func Quit(err error) {
	pterm.Error.Println(err)
	os.Exit(int(osutil.ExitError))
}

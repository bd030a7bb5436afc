package main

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// x11Window looks for a managed top-level window on the X server named by
// $DISPLAY. ok is false when no server is reachable or it has no clients.
func x11Window() (win xproto.Window, name string, ok bool) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return 0, "", false
	}
	defer xu.Conn().Close()

	wnds, err := ewmh.ClientListGet(xu)
	if err != nil || len(wnds) == 0 {
		return 0, "", false
	}
	name, _ = ewmh.WmNameGet(xu, wnds[0])
	return wnds[0], name, true
}

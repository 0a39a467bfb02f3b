package system

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// EnterGraphics puts the console into graphics mode and hides the cursor.
// Failures are logged and otherwise ignored; a desktop terminal has no VT.
func EnterGraphics(l logger) {
	logResult(l, SetGraphicsMode(), "KD_GRAPHICS set", "KD_GRAPHICS failed")
	logResult(l, HideCursor(), "cursor hidden", "hide cursor failed")
}

// LeaveGraphics undoes EnterGraphics.
func LeaveGraphics(l logger) {
	logResult(l, RestoreTextMode(), "KD_TEXT set", "KD_TEXT failed")
	logResult(l, ShowCursor(), "cursor shown", "show cursor failed")
}

func logResult(l logger, err error, ok, failed string) {
	if l == nil {
		return
	}
	if err != nil {
		l.Errorf("tty", "%s: %v", failed, err)
		return
	}
	l.Infof("tty", "%s", ok)
}

package controller

import m "github.com/mouse-blink/strokefix/internal/model"

// Message types.
type runInfoMsg struct {
	roots   int
	threads int
}

type rewrittenMsg struct {
	path    m.Path
	changes int
}

type warningMsg struct{}

type completionMsg struct {
	summary m.Summary
}

type quitMsg struct{}

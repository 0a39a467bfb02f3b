package web

import "context"

// Server is the preview server as the app sees it: started with the face,
// stopped when the face goes away.
type Server interface {
	Start(ctx context.Context) error
	Stop() error
}

// NoopServer is used when the preview is disabled (--no-web).
type NoopServer struct{}

func (NoopServer) Start(context.Context) error { return nil }
func (NoopServer) Stop() error                 { return nil }

var (
	_ Server = NoopServer{}
	_ Server = (*HTTPServer)(nil)
)

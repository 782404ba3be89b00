package mandel

// FrameRenderer computes the frame seen through a view snapshot.
type FrameRenderer interface {
	Render(task FrameTask) (*Frame, error)
}

// FrameSource provides the most recent complete frame, if any.
type FrameSource interface {
	Last() (*Frame, bool)
}

var _ FrameRenderer = (*Renderer)(nil)

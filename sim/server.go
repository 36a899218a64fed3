package sim

// Server owns one service Distribution and holds at most one in-service
// Request at a time (spec.md §4.3).
type Server struct {
	ID   int
	Dist Distribution

	busy       bool
	current    *Request
	completion float64
}

// NewServer constructs an idle Server.
func NewServer(id int, dist Distribution) *Server {
	return &Server{ID: id, Dist: dist}
}

// Busy reports whether the Server currently holds a Request.
func (s *Server) Busy() bool {
	return s.busy
}

// Start begins service on req at time now. Precondition: the Server must
// be idle — violating this is a programming error (spec.md §7).
func (s *Server) Start(req *Request, now float64) {
	if s.busy {
		panic(&KernelInvariantError{Msg: "Server.Start called on a busy server"})
	}
	s.busy = true
	s.current = req
	req.ServiceStart = now
	d := s.Dist.Sample()
	s.completion = now + d
}

// Finish completes service, clearing busy state and returning the
// Request that was being served. Precondition: the Server must be busy.
func (s *Server) Finish() *Request {
	if !s.busy {
		panic(&KernelInvariantError{Msg: "Server.Finish called on an idle server"})
	}
	req := s.current
	s.busy = false
	s.current = nil
	s.completion = 0
	return req
}

// NextCompletion returns the scheduled completion time and whether the
// Server is currently busy (used by the read-only UI query surface).
func (s *Server) NextCompletion() (float64, bool) {
	return s.completion, s.busy
}

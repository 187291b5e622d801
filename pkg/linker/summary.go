package linker

// Summary counts link outcomes over one run
type Summary struct {
	Rows           int
	Created        int
	WouldCreate    int
	Existing       int
	SourceMissing  int
	Failed         int
	HeadersMissing bool
}

// Record adds res to the counts
func (s *Summary) Record(res Result) {
	s.Rows++
	switch res.Status {
	case StatusCreated:
		s.Created++
	case StatusWouldCreate:
		s.WouldCreate++
	case StatusExists:
		s.Existing++
	case StatusSourceMissing:
		s.SourceMissing++
	case StatusFailed:
		s.Failed++
	}
}

package inputnorm

// decoded is the result of attempting to decode one event from the
// head of a buffer. At most one of Key/Mouse/Paste is set; none is set
// when NeedsMore is true or the consumed bytes were discarded as noise.
type decoded struct {
	Key   *KeyEvent
	Mouse *MouseEvent
	Paste *PasteEvent

	Consumed  int
	NeedsMore bool
}

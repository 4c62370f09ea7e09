package bufferpoolmanager

// frameList is a doubly linked list over frame IDs stored as index arrays.
// Nodes are created once for every frame and only relinked afterwards.
// next walks from head to tail, prev walks from tail to head.
type frameList struct {
	next []FrameID
	prev []FrameID

	head FrameID
	tail FrameID
}

// newFrameList links frames 0..numFrames-1 in ascending order, frame 0 at the head.
func newFrameList(numFrames int) *frameList {

	list := &frameList{
		next: make([]FrameID, numFrames),
		prev: make([]FrameID, numFrames),
		head: 0,
		tail: FrameID(numFrames - 1),
	}

	for i := range numFrames {
		list.prev[i] = FrameID(i - 1)
		list.next[i] = FrameID(i + 1)
	}
	list.next[numFrames-1] = INVALID_FRAME_ID

	return list
}

func (list *frameList) unlink(frameId FrameID) {

	prev := list.prev[frameId]
	next := list.next[frameId]

	if prev == INVALID_FRAME_ID {
		list.head = next
	} else {
		list.next[prev] = next
	}

	if next == INVALID_FRAME_ID {
		list.tail = prev
	} else {
		list.prev[next] = prev
	}

	list.prev[frameId] = INVALID_FRAME_ID
	list.next[frameId] = INVALID_FRAME_ID
}

func (list *frameList) pushFront(frameId FrameID) {

	list.prev[frameId] = INVALID_FRAME_ID
	list.next[frameId] = list.head

	if list.head == INVALID_FRAME_ID {
		list.tail = frameId
	} else {
		list.prev[list.head] = frameId
	}
	list.head = frameId
}

func (list *frameList) moveToFront(frameId FrameID) {

	if list.head == frameId {
		return
	}
	list.unlink(frameId)
	list.pushFront(frameId)
}

// nth returns the frame reached by walking steps nodes forward from the head.
func (list *frameList) nth(steps int) FrameID {

	frameId := list.head
	for ; steps > 0 && frameId != INVALID_FRAME_ID; steps-- {
		frameId = list.next[frameId]
	}
	return frameId
}

// towardHead returns the neighbour of frameId on the head side, wrapping around to the tail.
func (list *frameList) towardHead(frameId FrameID) FrameID {

	if prev := list.prev[frameId]; prev != INVALID_FRAME_ID {
		return prev
	}
	return list.tail
}

// order returns the frame IDs from head to tail.
func (list *frameList) order() []FrameID {

	frameIds := make([]FrameID, 0, len(list.next))
	for frameId := list.head; frameId != INVALID_FRAME_ID; frameId = list.next[frameId] {
		frameIds = append(frameIds, frameId)
	}
	return frameIds
}

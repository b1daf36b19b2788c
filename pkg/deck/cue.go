// ABOUTME: Fixed-capacity hot cue table mapping pad slots to frame positions
// ABOUTME: Session-scoped; cleared on every track load
package deck

// NumCues is the number of hot cue slots, matching the four-pad layout
const NumCues = 4

// cueUnset marks an empty slot
const cueUnset = int64(-1)

// cueTable is the engine-side cue storage. Slot validation happens on the
// control thread before a cue command is ever enqueued.
type cueTable struct {
	slots [NumCues]int64
}

// reset unsets every slot
func (c *cueTable) reset() {
	for i := range c.slots {
		c.slots[i] = cueUnset
	}
}

// set stores frame into slot, overwriting any prior value
func (c *cueTable) set(slot int, frame int64) {
	c.slots[slot] = frame
}

// frame returns the stored position and whether the slot is set
func (c *cueTable) frame(slot int) (int64, bool) {
	f := c.slots[slot]
	return f, f != cueUnset
}

// clear unsets slot
func (c *cueTable) clear(slot int) {
	c.slots[slot] = cueUnset
}

// validSlot reports whether slot is within [0, NumCues)
func validSlot(slot int) bool {
	return slot >= 0 && slot < NumCues
}

package io

// Temporary implements a circular buffer of bytes. Bytes sent are received
// back in order, which makes it a loopback terminal for a machine.
type Temporary struct {
	Capacity int // Capacity in bytes.

	ReadIndex  int
	WriteIndex int
	Size       int
	Data       []byte
}

var _ Channel = (*Temporary)(nil)

// Rewind resets the temporary storage to empty, resetting indices and
// reinitializing the data buffer.
func (temp *Temporary) Rewind() {
	temp.ReadIndex = 0
	temp.WriteIndex = 0
	temp.Size = 0
	temp.Data = make([]byte, temp.Capacity)
}

// Receive returns the oldest byte in the buffer, or ErrInputExhausted if the
// buffer is empty.
func (temp *Temporary) Receive() (value byte, err error) {
	if temp.Size == 0 {
		err = ErrInputExhausted
		return
	}

	value = temp.Data[temp.ReadIndex]
	temp.ReadIndex++
	if temp.ReadIndex == temp.Capacity {
		temp.ReadIndex = 0
	}
	temp.Size--

	return
}

// Send appends a byte to the buffer.
// Returns ErrChannelFull if the buffer has reached capacity.
func (temp *Temporary) Send(value byte) (err error) {
	if temp.Size >= temp.Capacity || len(temp.Data) != temp.Capacity {
		err = ErrChannelFull
		return
	}

	temp.Data[temp.WriteIndex] = value

	temp.WriteIndex++
	if temp.WriteIndex == temp.Capacity {
		temp.WriteIndex = 0
	}
	temp.Size++

	return
}

// Bytes returns the buffered bytes, oldest first, without consuming them.
func (temp *Temporary) Bytes() (data []byte) {
	for n := range temp.Size {
		data = append(data, temp.Data[(temp.ReadIndex+n)%temp.Capacity])
	}
	return
}

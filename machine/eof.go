package machine

// EOFPolicy selects what an input operator does once input is exhausted.
type EOFPolicy int

const (
	EOF_ERROR = EOFPolicy(0) // error
	EOF_ZERO  = EOFPolicy(1) // zero
	EOF_KEEP  = EOFPolicy(2) // keep
)

var eofNames = map[EOFPolicy]string{
	EOF_ERROR: "error",
	EOF_ZERO:  "zero",
	EOF_KEEP:  "keep",
}

func (policy EOFPolicy) String() string {
	name, ok := eofNames[policy]
	if !ok {
		return "EOFPolicy(?)"
	}
	return name
}

// ParseEOFPolicy returns the policy named by text. The empty string is EOF_ERROR.
func ParseEOFPolicy(text string) (policy EOFPolicy, err error) {
	if text == "" {
		return
	}

	for policy, name := range eofNames {
		if name == text {
			return policy, nil
		}
	}

	err = ErrEOFPolicy
	return
}

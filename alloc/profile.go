package alloc

import (
	"fmt"
	"strings"
)

// Profile names one of the strategy stacks a process can run with.
type Profile uint8

const (
	// ProfileFixedSizeBlock is FixedSizeBlock over Bump over an OS slab.
	ProfileFixedSizeBlock Profile = iota
	// ProfileBump is Bump over an OS slab.
	ProfileBump
	// ProfileSimple is the 128 KiB Simple arena; it never touches the OS.
	ProfileSimple
)

// String returns the canonical profile name.
func (p Profile) String() string {
	switch p {
	case ProfileFixedSizeBlock:
		return "fixed-size-block"
	case ProfileBump:
		return "bump"
	case ProfileSimple:
		return "simple"
	default:
		return fmt.Sprintf("Profile(%d)", uint8(p))
	}
}

// ParseProfile accepts the canonical names plus "fixed" and underscore spellings.
func ParseProfile(s string) (Profile, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-") {
	case "fixed-size-block", "fixed", "fsb":
		return ProfileFixedSizeBlock, nil
	case "bump":
		return ProfileBump, nil
	case "simple":
		return ProfileSimple, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownProfile, s)
	}
}

// Profiles lists every profile in declaration order.
func Profiles() []Profile {
	return []Profile{ProfileFixedSizeBlock, ProfileBump, ProfileSimple}
}

// New builds a coordinator for p over factory. The returned Provider is a
// *Switchable specialised for the profile's strategy.
func New(p Profile, factory ChunkFactory) (Provider, error) {
	switch p {
	case ProfileFixedSizeBlock:
		fsb, err := NewFixedSizeBlock(NewBump(), nil)
		if err != nil {
			return nil, err
		}
		return NewSwitchable(fsb, factory), nil
	case ProfileBump:
		return NewSwitchable(NewBump(), factory), nil
	case ProfileSimple:
		return NewSwitchable(NewSimple(), factory), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownProfile, p)
	}
}

//go:build memkit_bump && !memkit_simple

package memory

import "github.com/joshuapare/memkit/alloc"

const profile = alloc.ProfileBump

func newProvider() *alloc.Switchable[*alloc.Bump, *alloc.VirtualMemoryChunkFactory] {
	return alloc.NewSwitchable(alloc.NewBump(), alloc.NewVirtualMemoryChunkFactory(alloc.DefaultFactoryConfig()))
}

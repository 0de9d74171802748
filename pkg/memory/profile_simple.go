//go:build memkit_simple

package memory

import "github.com/joshuapare/memkit/alloc"

const profile = alloc.ProfileSimple

func newProvider() *alloc.Switchable[*alloc.Simple, *alloc.VirtualMemoryChunkFactory] {
	return alloc.NewSwitchable(alloc.NewSimple(), alloc.NewVirtualMemoryChunkFactory(alloc.DefaultFactoryConfig()))
}

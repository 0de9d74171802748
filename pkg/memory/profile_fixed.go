//go:build !memkit_simple && !memkit_bump

package memory

import "github.com/joshuapare/memkit/alloc"

const profile = alloc.ProfileFixedSizeBlock

func newProvider() *alloc.Switchable[*alloc.FixedSizeBlock[*alloc.Bump], *alloc.VirtualMemoryChunkFactory] {
	fsb, err := alloc.NewFixedSizeBlock(alloc.NewBump(), nil)
	if err != nil {
		// The default block size table is valid by construction.
		panic(err)
	}
	return alloc.NewSwitchable(fsb, alloc.NewVirtualMemoryChunkFactory(alloc.DefaultFactoryConfig()))
}

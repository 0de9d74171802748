/*
Package memory is the process-wide memory provider.

One allocator instance is built when the package is initialised and lives for
the rest of the process. It reserves nothing until the first request; then the
active strategy is bound to a 64 MiB slab obtained from the OS.

# Quick Start

	ptr, err := memory.Allocate(64, 8)
	if err != nil {
	    log.Fatal(err)
	}
	defer memory.Deallocate(ptr, 64, 8)

	fmt.Println("allocated so far:", memory.Allocated())

# Profiles

Exactly one strategy profile is compiled in, chosen with build tags:

	go build                      # fixed-size-block (default)
	go build -tags memkit_bump    # bump
	go build -tags memkit_simple  # simple 128 KiB arena

There is no runtime switching. Code that needs a private allocator with a
different profile builds one with alloc.New.

# Consumers

Bytes, String, Box and Buffer carve Go values out of any alloc.Provider:

	p := memory.Default()
	buf := memory.NewBuffer(p)
	defer buf.Release()
	_ = buf.Append([]byte("hello")...)

Memory from a Provider is invisible to the garbage collector. Only store
pointer-free data in it, and free it through the same Provider.
*/
package memory

// Package library is the add-in library entry point: a registry of
// component classes and a handle table of the objects created from them.
//
// The host asks for the class list once, then creates and destroys objects
// by name:
//
//	lib := library.New(addin.WithLogger(log))
//	lib.Register("Sample", func() (component.Description, error) {
//	    return newSample()
//	})
//
//	names := lib.ClassNames() // "Sample" as UTF-16
//	h, obj, err := lib.CreateObject("Sample")
//	...
//	lib.DestroyObject(h)
//
// Handle 0 is never issued. Destroyed handles are reused.
//
// Observers receive an Event after each object is created and after each
// object is destroyed.
package library

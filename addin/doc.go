// Package addin exposes a component description to a host through the
// fixed add-in object surface.
//
// An Object is the only place where structured errors become the host's
// boolean results. Every failed call stores its error, available through
// LastError, and logs it at debug level:
//
//	obj, err := addin.New(desc, addin.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//	if !obj.Init(host) {
//	    return obj.LastError()
//	}
//	defer obj.Done()
//
//	ord := obj.FindMethod(variant.EncodeUTF16("TestMethod"))
//	ok := obj.CallAsFunc(ord, retSlot, params, 2)
//
// Slots and parameter arrays are host addresses of wire records. Names
// returned by GetPropName and GetMethodName are zero-terminated UTF-16
// buffers allocated with the host's allocator; the host frees them.
package addin

package main

/*
#include <stdlib.h>
#include "phishcheck.h"

static inline void phishcheck_notify(phishcheck_callback cb, const char *payload) {
	if (cb != NULL) {
		cb(payload);
	}
}
*/
import "C"

import "unsafe"

// notify passes payload to cb as a C string that is freed as soon as cb
// returns.
func notify(cb C.phishcheck_callback, payload []byte) {
	cs := C.CString(string(payload))
	defer C.free(unsafe.Pointer(cs))
	C.phishcheck_notify(cb, cs)
}

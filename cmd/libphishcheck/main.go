// Command libphishcheck builds the phishing checker as a C shared library:
//
//	go build -buildmode=c-shared -o libphishcheck.so ./cmd/libphishcheck
//
// Exported functions:
//
//	bool init_domains(const char *path);
//	char *check_message(const char *message, phishcheck_callback cb);
//	void free_string(char *s);
//
// Every string returned by check_message must be passed to free_string
// exactly once and not read afterwards. free_string(NULL) is a no-op.
// Pointers that did not come from check_message are ignored, but freeing
// twice or freeing foreign memory remains the caller's bug.
package main

/*
#include <stdbool.h>
#include <stdlib.h>
#include "phishcheck.h"
*/
import "C"

import (
	"unsafe"

	logger "github.com/Easy-Infra-Ltd/easy-logger"

	"github.com/Easy-Infra-Ltd/easy-phishcheck/src/blacklist"
	"github.com/Easy-Infra-Ltd/easy-phishcheck/src/boundary"
)

// C callers have no handle to thread through, so the library keeps one
// adapter for the life of the process.
var (
	adapter = boundary.New(
		blacklist.NewStore(),
		logger.CreateLoggerFromEnv(nil, "blue").With("process", "libphishcheck"),
	)
	issued boundary.Ledger[unsafe.Pointer]
)

//export init_domains
func init_domains(path *C.char) C.bool {
	if path == nil {
		return C.bool(false)
	}
	return C.bool(adapter.Load([]byte(C.GoString(path))))
}

//export check_message
func check_message(message *C.char, cb C.phishcheck_callback) *C.char {
	var raw []byte
	if message != nil {
		raw = []byte(C.GoString(message))
	}

	buf := adapter.Check(raw, func(payload []byte) {
		notify(cb, payload)
	})
	out := C.CString(buf.String())
	adapter.Release(buf)

	issued.Track(unsafe.Pointer(out))
	return out
}

//export free_string
func free_string(s *C.char) {
	if s == nil {
		return
	}
	p := unsafe.Pointer(s)
	if !issued.Untrack(p) {
		return
	}
	C.free(p)
}

func main() {}

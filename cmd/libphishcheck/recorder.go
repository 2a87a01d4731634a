package main

/*
#include <stdlib.h>
#include <string.h>
#include "phishcheck.h"

static int recorded_calls;
static char *recorded_payload;

static void record_payload(const char *payload) {
	recorded_calls++;
	free(recorded_payload);
	recorded_payload = payload != NULL ? strdup(payload) : NULL;
}

static phishcheck_callback recording_callback(void) {
	recorded_calls = 0;
	free(recorded_payload);
	recorded_payload = NULL;
	return record_payload;
}

static int recorder_calls(void) { return recorded_calls; }
static const char *recorder_payload(void) { return recorded_payload; }
*/
import "C"

import "unsafe"

// The helpers below drive the exports the way a C host would. Test files
// cannot use cgo directly.

// recordingCallback resets the recorder and returns a C callback that
// counts its calls and copies the last payload.
func recordingCallback() C.phishcheck_callback {
	return C.recording_callback()
}

func recordedCalls() int {
	return int(C.recorder_calls())
}

func recordedPayload() (string, bool) {
	p := C.recorder_payload()
	if p == nil {
		return "", false
	}
	return C.GoString(p), true
}

func callInitDomains(path string) bool {
	cs := C.CString(path)
	defer C.free(unsafe.Pointer(cs))
	return bool(init_domains(cs))
}

func callCheckMessage(message string, cb C.phishcheck_callback) *C.char {
	cs := C.CString(message)
	defer C.free(unsafe.Pointer(cs))
	return check_message(cs, cb)
}

package wire

import (
	"bufio"
	"bytes"
	"reflect"
	"testing"
)

func TestRequestRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	n := 10
	want := Request{Type: ReqGetScrollback, Lines: &n}
	if err := SendRequest(&buf, want); err != nil {
		t.Fatalf("SendRequest: %v", err)
	}

	got, err := ReadRequest(bufio.NewReader(&buf))
	if err != nil {
		t.Fatalf("ReadRequest: %v", err)
	}
	if got.Type != want.Type || got.Lines == nil || *got.Lines != *want.Lines {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestResponseRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	want := Response{Type: RespCursor, Row: 3, Col: 7}
	if err := SendResponse(&buf, want); err != nil {
		t.Fatalf("SendResponse: %v", err)
	}

	got, err := ReadResponse(bufio.NewReader(&buf))
	if err != nil {
		t.Fatalf("ReadResponse: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte("hello")
	if err := WriteFrame(&buf, FrameTypeData, payload); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	gotType, gotPayload, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if gotType != FrameTypeData || string(gotPayload) != "hello" {
		t.Fatalf("got type=%d payload=%q", gotType, gotPayload)
	}
}

func TestFrameEmptyPayload(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrame(&buf, FrameTypeControl, nil); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	gotType, gotPayload, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if gotType != FrameTypeControl || len(gotPayload) != 0 {
		t.Fatalf("got type=%d payload=%q", gotType, gotPayload)
	}
}

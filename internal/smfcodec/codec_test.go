package smfcodec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/leandrodaf/crim2s/sdk/contracts"
)

// smfBytes assembles a container from raw track bodies.
func smfBytes(format, division uint16, tracks ...[]byte) []byte {
	var b bytes.Buffer
	b.WriteString("MThd")
	binary.Write(&b, binary.BigEndian, uint32(6))
	binary.Write(&b, binary.BigEndian, format)
	binary.Write(&b, binary.BigEndian, uint16(len(tracks)))
	binary.Write(&b, binary.BigEndian, division)
	for _, tr := range tracks {
		b.WriteString("MTrk")
		binary.Write(&b, binary.BigEndian, uint32(len(tr)))
		b.Write(tr)
	}
	return b.Bytes()
}

var endOfTrack = []byte{0x00, 0xFF, 0x2F, 0x00}

func track(events ...[]byte) []byte {
	var b []byte
	for _, e := range events {
		b = append(b, e...)
	}
	return append(b, endOfTrack...)
}

func notes(tr contracts.Track) []contracts.Event {
	var out []contracts.Event
	for _, e := range tr.Events {
		if e.IsNote() || e.Kind == contracts.ProgramChange {
			out = append(out, e)
		}
	}
	return out
}

func TestDecodeSingleTrack(t *testing.T) {
	data := smfBytes(0, 480, track(
		[]byte{0x00, 0x90, 0x3C, 0x40},
		[]byte{0x83, 0x60, 0x80, 0x3C, 0x40}, // delta 480
	))

	doc, err := Decode(bytes.NewReader(data), "single.mid")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if doc.TicksPerBeat != 480 {
		t.Errorf("TicksPerBeat = %d, want 480", doc.TicksPerBeat)
	}
	if len(doc.Tracks) != 1 {
		t.Fatalf("got %d tracks, want 1", len(doc.Tracks))
	}
	want := []contracts.Event{
		{Kind: contracts.NoteOn, Note: 60, Velocity: 64, Track: 0, Delta: 0, AbsoluteTime: 0},
		{Kind: contracts.NoteOff, Note: 60, Velocity: 64, Track: 0, Delta: 480, AbsoluteTime: 480},
	}
	if diff := cmp.Diff(want, notes(doc.Tracks[0])); diff != "" {
		t.Errorf("decoded events mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeKeepsMetaTimingAndNames(t *testing.T) {
	name := []byte("Lead")
	data := smfBytes(1, 96,
		track(
			append([]byte{0x00, 0xFF, 0x03, byte(len(name))}, name...),
			[]byte{0x10, 0xFF, 0x51, 0x03, 0x07, 0xA1, 0x20}, // tempo after 16 ticks
			[]byte{0x08, 0xC1, 0x05},                         // program change at 24
			[]byte{0x00, 0x91, 0x40, 0x50},
			[]byte{0x30, 0x40, 0x00}, // running status: note on, velocity 0 at 72
		),
	)

	doc, err := Decode(bytes.NewReader(data), "meta.mid")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	tr := doc.Tracks[0]
	if tr.Name != "Lead" {
		t.Errorf("track name = %q, want %q", tr.Name, "Lead")
	}
	want := []contracts.Event{
		{Kind: contracts.ProgramChange, Channel: 1, Program: 5, Delta: 8, AbsoluteTime: 24},
		{Kind: contracts.NoteOn, Channel: 1, Note: 64, Velocity: 80, Delta: 0, AbsoluteTime: 24},
		{Kind: contracts.NoteOn, Channel: 1, Note: 64, Velocity: 0, Delta: 48, AbsoluteTime: 72},
	}
	if diff := cmp.Diff(want, notes(tr)); diff != "" {
		t.Errorf("decoded events mismatch (-want +got):\n%s", diff)
	}
	for _, e := range tr.Events[:2] {
		if e.Kind != contracts.Meta {
			t.Errorf("leading event kind = %v, want meta", e.Kind)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, c := range []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"bad chunk tag", append([]byte("RIFF"), smfBytes(0, 480, track())[4:]...)},
		{"truncated header", smfBytes(0, 480)[:10]},
		{"smpte division", smfBytes(0, 0xE728, track([]byte{0x00, 0x90, 0x3C, 0x40}))},
		{"running status without status", smfBytes(0, 480, track([]byte{0x00, 0x3C, 0x40}))},
		{"track cut short", func() []byte {
			whole := smfBytes(0, 480, track([]byte{0x00, 0x90, 0x3C, 0x40}, []byte{0x60, 0x80, 0x3C, 0x40}))
			return whole[:len(whole)-6]
		}()},
		{"track without end", smfBytes(0, 480, []byte{0x00, 0x90, 0x3C, 0x40})},
	} {
		t.Run(c.name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(c.data), c.name)
			if !errors.Is(err, contracts.ErrDecode) {
				t.Fatalf("Decode error = %v, want a DecodeError", err)
			}
			var de *contracts.DecodeError
			if !errors.As(err, &de) || de.Source != c.name {
				t.Errorf("DecodeError source = %+v, want %q", de, c.name)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	doc := &contracts.Document{
		TicksPerBeat: 240,
		Tracks: []contracts.Track{{
			Name: "Piano",
			Events: []contracts.Event{
				{Kind: contracts.ProgramChange, Program: 3},
				{Kind: contracts.NoteOn, Note: 60, Velocity: 64},
				{Kind: contracts.NoteOn, Note: 64, Velocity: 64},
				{Kind: contracts.NoteOff, Note: 60, Velocity: 64, Delta: 240},
				{Kind: contracts.NoteOff, Note: 64, Velocity: 64},
			},
			Tail: 120,
		}, {
			Events: []contracts.Event{
				{Kind: contracts.Meta, Delta: 100}, // not encodable; its delta moves to the next event
				{Kind: contracts.NoteOn, Channel: 9, Note: 36, Velocity: 100, Delta: 20},
				{Kind: contracts.NoteOff, Channel: 9, Note: 36, Velocity: 40, Delta: 60},
			},
		}},
	}

	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(&buf, "roundtrip")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if got.TicksPerBeat != 240 || len(got.Tracks) != 2 {
		t.Fatalf("decoded header = (%d, %d tracks), want (240, 2 tracks)", got.TicksPerBeat, len(got.Tracks))
	}
	if got.Tracks[0].Name != "Piano" {
		t.Errorf("track name = %q, want Piano", got.Tracks[0].Name)
	}

	wantFirst := []contracts.Event{
		{Kind: contracts.ProgramChange, Program: 3},
		{Kind: contracts.NoteOn, Note: 60, Velocity: 64},
		{Kind: contracts.NoteOn, Note: 64, Velocity: 64},
		{Kind: contracts.NoteOff, Note: 60, Velocity: 64, Delta: 240, AbsoluteTime: 240},
		{Kind: contracts.NoteOff, Note: 64, Velocity: 64, AbsoluteTime: 240},
	}
	if diff := cmp.Diff(wantFirst, notes(got.Tracks[0])); diff != "" {
		t.Errorf("track 0 mismatch (-want +got):\n%s", diff)
	}

	wantSecond := []contracts.Event{
		{Kind: contracts.NoteOn, Channel: 9, Note: 36, Velocity: 100, Track: 1, Delta: 120, AbsoluteTime: 120},
		{Kind: contracts.NoteOff, Channel: 9, Note: 36, Velocity: 40, Track: 1, Delta: 60, AbsoluteTime: 180},
	}
	if diff := cmp.Diff(wantSecond, notes(got.Tracks[1])); diff != "" {
		t.Errorf("track 1 mismatch (-want +got):\n%s", diff)
	}

}

func TestEncodeRejectsZeroResolution(t *testing.T) {
	err := Encode(&bytes.Buffer{}, &contracts.Document{})
	if !errors.Is(err, contracts.ErrInvalidParameter) {
		t.Errorf("Encode error = %v, want ErrInvalidParameter", err)
	}
}

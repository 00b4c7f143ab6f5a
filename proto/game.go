package proto

import (
	"encoding/binary"

	"picotris/tetris"
)

// CommandPayload encodes a MsgCommand payload.
//
// Payload format:
//
//	b[0] : tetris.Command
func CommandPayload(cmd tetris.Command) []byte {
	return []byte{byte(cmd)}
}

func DecodeCommandPayload(b []byte) (cmd tetris.Command, ok bool) {
	if len(b) != 1 {
		return tetris.CmdNone, false
	}
	cmd = tetris.Command(b[0])
	if cmd > tetris.CmdHardDrop {
		return tetris.CmdNone, false
	}
	return cmd, true
}

// FramePayload encodes a MsgFrame notification: a new snapshot was
// published with sequence seq.
//
// Payload format (little-endian):
//
//	u32 seq
func FramePayload(seq uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, seq)
	return b
}

func DecodeFramePayload(b []byte) (seq uint32, ok bool) {
	if len(b) != 4 {
		return 0, false
	}
	return binary.LittleEndian.Uint32(b), true
}

// MusicPayload encodes a MsgMusic play/stop request.
//
// Payload format:
//
//	b[0] == 0 => stop
//	b[0] != 0 => play from the start
func MusicPayload(play bool) []byte {
	if play {
		return []byte{1}
	}
	return []byte{0}
}

func DecodeMusicPayload(b []byte) (play bool, ok bool) {
	if len(b) != 1 {
		return false, false
	}
	return b[0] != 0, true
}

//go:build windows

package tray

import "encoding/binary"

// Icon returns the tray icon as an ICO container. Windows expects ICO
// data; a single PNG-compressed entry is valid since Vista.
func Icon() []byte {
	img := pngIcon()
	// ICONDIR (6 bytes) + one ICONDIRENTRY (16 bytes).
	hdr := make([]byte, 22)
	binary.LittleEndian.PutUint16(hdr[2:], 1)   // type: icon
	binary.LittleEndian.PutUint16(hdr[4:], 1)   // count
	hdr[6] = 16                                 // width
	hdr[7] = 16                                 // height
	binary.LittleEndian.PutUint16(hdr[12:], 32) // bit depth
	binary.LittleEndian.PutUint32(hdr[14:], uint32(len(img)))
	binary.LittleEndian.PutUint32(hdr[18:], 22) // data offset
	return append(hdr, img...)
}

// Package binary inspects Windows executables produced by the application build.
//
// The only question asked of a binary is its word size: the Windows package
// name carries an "x32" or "x64" suffix derived from the PE optional header
// magic. No general-purpose validation is attempted.
//
// # Header walk
//
//  1. The file starts with the legacy stub signature "MZ".
//  2. The DWORD at 0x3A bytes past that signature (absolute offset 0x3C,
//     e_lfanew) holds the absolute offset of the NT headers.
//  3. The NT headers start with "PE\x00\x00".
//  4. The 20-byte COFF file header follows.
//  5. The next WORD is the optional header magic: 0x010B (PE32) or 0x020B (PE32+).
//
// Any deviation yields an *InvalidExecutableError naming the file and the
// bytes that were actually found.
package binary

package fileutil

import "os"

// OwnerReadWrite is the file permission mode for written config documents
// containing potentially sensitive API data (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// ReadableByAll is the file permission mode for scaffolded starter files
// intended to be read by editors and other tools.
const ReadableByAll os.FileMode = 0o644

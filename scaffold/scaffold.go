// Package scaffold writes the starter document for a new project.
package scaffold

import (
	"os"
	"path/filepath"

	"github.com/reqcraft/rqc/internal/fileutil"
	"github.com/reqcraft/rqc/rqcerrors"
)

// DocumentFile is the default document name the dev server loads.
const DocumentFile = ".rqc"

const starter = `// Import other .rqc files
// import "./user.rqc"

config {
  baseUrl http://localhost:3000
}

api /api/user {
  get {
    request {}
    response {
      username String @mock("john_doe")
      email String @mock("john@example.com")
      age Number @mock(25)
      active Boolean @mock(true)
    }
  }
}

api /api/posts {
  get {
    request {}
    response {
      title String @mock("Hello World")
      content String @mock("This is a mock post content")
    }
  }
  post {
    request {
      title String
      content String
    }
    response {
      id Number @mock(1)
      success Boolean @mock(true)
    }
  }
}
`

// Init writes the starter document into dir and returns its path. An
// existing document is never overwritten; that case returns an error
// wrapping os.ErrExist.
func Init(dir string) (string, error) {
	path := filepath.Join(dir, DocumentFile)

	if _, err := os.Stat(path); err == nil {
		return path, &rqcerrors.ConfigError{
			Option:  DocumentFile,
			Message: "already exists",
			Cause:   os.ErrExist,
		}
	}

	if err := os.WriteFile(path, []byte(starter), fileutil.ReadableByAll); err != nil {
		return path, err
	}
	return path, nil
}

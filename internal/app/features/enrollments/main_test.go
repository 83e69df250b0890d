package enrollments_test

import (
	"os"
	"testing"

	"github.com/dalemusser/learnadmin/internal/testutil"
)

func TestMain(m *testing.M) {
	testutil.BootTemplates()
	os.Exit(m.Run())
}

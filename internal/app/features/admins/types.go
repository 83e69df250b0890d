// internal/app/features/admins/types.go
package admins

import (
	"github.com/dalemusser/learnadmin/internal/app/system/format"
	"github.com/dalemusser/learnadmin/internal/app/system/formutil"
	"github.com/dalemusser/learnadmin/internal/app/system/viewdata"
)

type adminRow struct {
	ID        string
	Name      string
	Email     string
	Role      string
	RoleLabel string
	Status    string
	Joined    string
	LastLogin string

	// Self marks the signed-in operator, whose row offers no actions.
	Self        bool
	RoleOptions []format.Option
}

type listData struct {
	viewdata.BaseVM

	Q    string
	Role string

	RoleFilter []format.Option

	Rows []adminRow
}

type formData struct {
	formutil.Base

	Name  string
	Email string
	Role  string

	RoleOptions []format.Option
}

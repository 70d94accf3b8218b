package user

import (
	domcommon "usermgmt/internal/domain/common"
)

func IsNotFound(err error) bool {
	return domcommon.IsNotFound(err)
}

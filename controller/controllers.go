// controller/controllers.go
package controller

import (
	"github.com/soxlite/api/service"
	"github.com/soxlite/api/util"
)

type Controllers struct {
	Scan *ScanController
}

func InitializeControllers(services *service.Services, validationUtil *util.ValidationUtil) *Controllers {
	return &Controllers{
		Scan: NewScanController(services.Scan, validationUtil),
	}
}

package handler

import (
	"net/http"
	"reflect"
	"strings"

	homedomain "home-rota-go/internal/domain/home"
	rotationdomain "home-rota-go/internal/domain/rotation"
	userdomain "home-rota-go/internal/domain/user"
	"home-rota-go/pkg/logger"

	"github.com/go-playground/validator/v10"
)

type Handlers struct {
	Users     *userdomain.Service
	Homes     *homedomain.Service
	Rotations *rotationdomain.Service

	validate *validator.Validate
	log      logger.Logger
}

func New(users *userdomain.Service, homes *homedomain.Service, rotations *rotationdomain.Service, log logger.Logger) *Handlers {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Handlers{
		Users:     users,
		Homes:     homes,
		Rotations: rotations,
		validate:  validate,
		log:       log,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

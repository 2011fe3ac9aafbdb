package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/marinv/contractor-pm/internal/auth"
	offershttp "github.com/marinv/contractor-pm/internal/offers/http"
	projectshttp "github.com/marinv/contractor-pm/internal/projects/http"
	usershttp "github.com/marinv/contractor-pm/internal/users/http"
)

// UserStore is what the identity middleware and /me need.
type UserStore interface {
	auth.UserEnsurer
	usershttp.ProfileStore
}

type V1Deps struct {
	Users      UserStore
	Projects   projectshttp.ProjectService
	Offers     offershttp.OfferService
	EmailLimit gin.HandlerFunc
}

func RegisterV1(r *gin.Engine, dep V1Deps) {
	api := r.Group("/api/v1")
	api.Use(auth.WithUser(dep.Users))

	usershttp.New(dep.Users).Register(api)
	projectshttp.New(dep.Projects).Register(api)
	offershttp.New(dep.Offers).Register(api.Group("/projects"), dep.EmailLimit)
}

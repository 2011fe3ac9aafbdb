package bootstrap

import (
	"database/sql"

	"github.com/redis/go-redis/v9"

	"github.com/marinv/contractor-pm/config"
	"github.com/marinv/contractor-pm/internal/offers/dispatch"
	"github.com/marinv/contractor-pm/internal/offers/report"
	offerrepo "github.com/marinv/contractor-pm/internal/offers/repository"
	offersvc "github.com/marinv/contractor-pm/internal/offers/service"
	projectrepo "github.com/marinv/contractor-pm/internal/projects/repository"
	projectsvc "github.com/marinv/contractor-pm/internal/projects/service"
	"github.com/marinv/contractor-pm/internal/storage/logos"
	userrepo "github.com/marinv/contractor-pm/internal/users/repository"
)

// Services is the wired application layer shared by the API and the worker.
type Services struct {
	Users      *userrepo.UserRepository
	Projects   *projectsvc.ProjectService
	Offers     *offersvc.OfferService
	Dispatcher *dispatch.Dispatcher
}

// NewServices wires repositories and services. rdb may be nil, which
// disables the offer history.
func NewServices(cfg *config.Config, db *sql.DB, rdb *redis.Client) *Services {
	users := userrepo.NewUserRepository(db)
	projects := projectrepo.NewProjectRepository(db)
	workerTypes := projectrepo.NewWorkerTypeRepository(db)
	entries := projectrepo.NewTimeEntryRepository(db)
	materials := projectrepo.NewMaterialRepository(db)
	dispatcher := dispatch.New(cfg.SMTP)

	deps := offersvc.Deps{
		Projects:    projects,
		TimeEntries: entries,
		Materials:   materials,
		WorkerTypes: workerTypes,
		Profiles:    users,
		Logos:       logos.NewStore(cfg.Uploads.Dir),
		Renderer: report.NewRenderer(report.Options{
			CurrencySymbol: cfg.Report.CurrencySymbol,
			DefaultCompany: cfg.Report.DefaultCompany,
		}),
		Mailer:         dispatcher,
		DefaultCompany: cfg.Report.DefaultCompany,
	}
	if rdb != nil {
		deps.OfferLog = offerrepo.NewOfferLogRepository(rdb)
	}

	return &Services{
		Users:      users,
		Projects:   projectsvc.NewProjectService(projects, workerTypes, entries, materials),
		Offers:     offersvc.NewOfferService(deps),
		Dispatcher: dispatcher,
	}
}

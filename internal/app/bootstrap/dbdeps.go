// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/jawahirullah/portal/internal/app/store/admins"
	"github.com/jawahirullah/portal/internal/app/store/authsessions"
	"github.com/jawahirullah/portal/internal/app/store/content"
	"github.com/jawahirullah/portal/internal/app/system/authsession"
	"github.com/jawahirullah/portal/internal/app/system/prefs"
	"github.com/jawahirullah/portal/internal/app/system/ratelimit"
	"github.com/jawahirullah/portal/internal/app/system/workers"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds the back-end dependencies shared by every hook. The Mongo
// fields are nil when the memory backend is selected.
type DBDeps struct {
	Backend       string
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	Stores   content.Stores
	Admins   admins.Directory
	Sessions authsessions.Records

	// Long-lived pieces built in BuildHandler and stopped in Shutdown.
	rt *runtime
}

type runtime struct {
	registry       *authsession.Registry
	cleanup        *workers.SessionCleanup
	loginLimiter   *ratelimit.LoginLimiter
	contactLimiter *ratelimit.FormLimiter
	signupLimiter  *ratelimit.FormLimiter
	prefsTally     *prefs.Tally
}

func (rt *runtime) stop() {
	if rt.cleanup != nil {
		rt.cleanup.Stop()
	}
	if rt.registry != nil {
		rt.registry.Close()
	}
	if rt.prefsTally != nil {
		rt.prefsTally.Close()
	}
	for _, s := range []interface{ Stop() }{rt.loginLimiter, rt.contactLimiter, rt.signupLimiter} {
		if s != nil {
			s.Stop()
		}
	}
}

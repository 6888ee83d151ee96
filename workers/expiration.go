// Package workers contient les tâches de fond de la plateforme.
package workers

import (
	"context"
	"time"

	"github.com/RinKhimera/onlyscam-sub000/db"
	"github.com/RinKhimera/onlyscam-sub000/utils"
)

// RunExpirationSweep marque expirés les abonnements dont la fenêtre est
// écoulée. C'est un rattrapage best-effort pour les écrans de listing : le
// contrôle d'accès recalcule toujours le statut depuis end_date et ne
// dépend pas de ce passage.
func RunExpirationSweep() (int64, error) {
	result := db.DB.Exec(`
		UPDATE subscriptions
		SET status = 'EXPIRED', updated_at = NOW()
		WHERE status <> 'EXPIRED'
		AND end_date < NOW()
	`)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// StartExpirationWorker lance le sweep quotidien, calé sur minuit UTC
func StartExpirationWorker(ctx context.Context) {
	go func() {
		for {
			now := time.Now().UTC()
			next := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)

			timer := time.NewTimer(next.Sub(now))
			select {
			case <-ctx.Done():
				timer.Stop()
				utils.LogInfo("Expiration worker arrêté")
				return
			case <-timer.C:
			}

			affected, err := RunExpirationSweep()
			if err != nil {
				utils.LogError(err, "Erreur lors du sweep d'expiration des abonnements")
				continue
			}
			if affected > 0 {
				utils.LogSuccess("Sweep d'expiration terminé")
			}
		}
	}()
}

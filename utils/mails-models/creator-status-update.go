package mailsmodels

import (
	"fmt"

	"github.com/RinKhimera/onlyscam-sub000/utils"
)

// CreatorStatusUpdate prévient un utilisateur du résultat de la revue de
// sa demande créateur
func CreatorStatusUpdate(email string, approved bool) {
	subject := "Subject: Votre demande créateur OnlyScam \r\n"
	mime := "MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n"

	var verdict string
	if approved {
		verdict = "Félicitations, votre demande a été approuvée ! Vous pouvez maintenant publier du contenu réservé à vos abonnés."
	} else {
		verdict = "Votre demande n'a pas pu être approuvée en l'état. Vous pouvez soumettre une nouvelle demande avec des justificatifs à jour."
	}

	body := fmt.Sprintf(`
	<div style="background-color: #0F172A; width: 100%%; min-height: 200px; padding: 30px; box-sizing:border-box">
		<table style="background-color: #ffffff; width: 100%%; min-height: 200px;">
			<tbody>
				<tr>
					<td><h1 style="text-align:center">Demande créateur</h1></td>
				</tr>
				<tr>
					<td style="text-align:center; padding-bottom: 30px;">%s</td>
				</tr>
			</tbody>
		</table>
	</div>
`, verdict)

	message := []byte(subject + mime + body)

	utils.SendMail(email, message)
}

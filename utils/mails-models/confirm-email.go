package mailsmodels

import (
	"fmt"

	"github.com/RinKhimera/onlyscam-sub000/utils"
)

func ConfirmEmail(email string, code string) {
	subject := "Subject: Bienvenue sur OnlyScam \r\n"
	mime := "MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n"
	body := fmt.Sprintf(`
	<div style="background-color: #0F172A; width: 100%%; min-height: 300px; padding: 30px; box-sizing:border-box">
		<table style="background-color: #ffffff; width: 100%%; min-height: 300px;">
			<tbody>
				<tr>
					<td><h1 style="text-align:center">Merci d'avoir rejoint OnlyScam</h1></td>
				</tr>
				<tr>
					<td style="text-align:center; padding-bottom: 30px;">Pour finaliser votre inscription, saisissez le code suivant sur l'application :</td>
				</tr>
				<tr>
					<td style="text-align:center; padding-bottom: 30px;">
						<p style="font-weight: bold; color: #0F172A; text-align:center;">%s</p>
					</td>
				</tr>
			</tbody>
		</table>
	</div>
`, code)

	message := []byte(subject + mime + body)

	utils.SendMail(email, message)
}

/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type SendEmailConfig struct {
	DbPath string
	From   string
	To     string
	Params chartParams
	DryRun bool
	Args   []string
}

var emailFlags = defaultChartParams()

var emailCmd = &cobra.Command{
	Use:   "email <address> [date] [date]",
	Short: "Emails a ranked play-time report",
	Long: `Emails the 'top' report to the specified address. Optional date
arguments restrict the range (e.g. '2023-01' or '2023-01 2023-06'); with
no dates, the previous month is used.`,
	Args: cobra.RangeArgs(1, 3),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetString("from") == "" {
			return fmt.Errorf("required flag(s) \"from\" not set")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		config := SendEmailConfig{
			DbPath: viper.GetString("database"),
			From:   viper.GetString("from"),
			To:     args[0],
			Params: emailFlags,
			DryRun: viper.GetBool("dryRun"),
			Args:   args[1:],
		}
		err := sendEmail(config)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(emailCmd)

	var from string
	emailCmd.Flags().StringVar(&from, "from", "", "From email address")
	viper.BindPFlag("from", emailCmd.Flags().Lookup("from"))

	var sendgridKey string
	emailCmd.Flags().StringVar(&sendgridKey, "sendgrid_api_key", "", "SendGrid API key")
	viper.BindPFlag("sendgrid_api_key", emailCmd.Flags().Lookup("sendgrid_api_key"))

	var dryRun bool
	emailCmd.Flags().BoolVarP(&dryRun, "dry_run", "n", false, "When true, just print instead of emailing")
	viper.BindPFlag("dryRun", emailCmd.Flags().Lookup("dry_run"))

	addChartParamFlags(emailCmd, &emailFlags)
}

func sendEmail(config SendEmailConfig) error {
	dateArgs := config.Args
	if len(dateArgs) == 0 {
		// Default to last month.
		now := time.Now()
		start := time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, now.Location())
		dateArgs = []string{start.Format("2006-01")}
	}

	analysis, start, end, err := topAnalysis(config.DbPath, config.Params, dateArgs)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Listening report %s to %s",
		start.Format("2006-01-02"), end.Format("2006-01-02"))
	body := emailBody(analysis)

	if config.DryRun {
		fmt.Printf("Would have sent email: \nsubject: %s\n%s\n", subject, body)
		return nil
	}

	from := mail.NewEmail("playchart", config.From)
	to := mail.NewEmail(config.To, config.To)
	message := mail.NewSingleEmail(from, subject, to, analysis.String(), body)
	client := sendgrid.NewSendClient(viper.GetString("sendgrid_api_key"))
	if _, err := client.Send(message); err != nil {
		return fmt.Errorf("sendEmail: %w", err)
	}

	fmt.Printf("Sent report to %s\n", config.To)
	return nil
}

func emailBody(analysis Analysis) string {
	if len(analysis.results) <= 1 {
		return "<div>No plays found.</div>\n"
	}

	out := `
	<table>
		<thead>
			<tr>
`
	for _, header := range analysis.results[0] {
		out += fmt.Sprintf("<th>%s</th>", header)
	}
	out += `			</tr>
		</thead>
		<tbody>
`
	for _, row := range analysis.results[1:] {
		out += "<tr>\n"
		for _, column := range row {
			out += fmt.Sprintf("<td>%s</td>\n", column)
		}
		out += "</tr>\n"
	}
	out += `
		</tbody>
	</table>
`
	out += fmt.Sprintf("<div>%s</div>\n", analysis.summary)
	return out
}

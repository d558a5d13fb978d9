package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron"

	"github.com/bdewet/goalops/internal/goalrunner"
	"github.com/bdewet/goalops/internal/replayrunner"
	"github.com/bdewet/goalops/pkg/config"
)

type Runner interface {
	Run() error
}

var runner Runner

func main() {
	singleRun := flag.Bool("single-run", false, "run task once (disable cron)")
	configFile := flag.String("config", "./config.yml", "configuration file")
	secretsFile := flag.String("secrets", "./secrets.json", "secrets file")
	help := flag.Bool("help", false, "show command help")

	month := flag.Int("month", 0, "replay month (1-12, default: previous month)")
	year := flag.Int("year", 0, "replay year (default: previous month's year)")

	from := flag.String("from", "", "transfer source account id")
	to := flag.String("to", "", "transfer destination account id")
	beneficiary := flag.String("beneficiary", "", "beneficiary id for payments")
	amount := flag.Float64("amount", 0, "transfer amount")
	goalID := flag.String("goal", "", "goal id to reconcile after the transfer")
	myReference := flag.String("my-reference", "goalops transfer", "statement reference on the source account")
	theirReference := flag.String("their-reference", "goalops transfer", "statement reference on the destination")

	flag.Parse()

	if *help {
		fmt.Println("savings goal tracker and monthly replay")
		fmt.Println("goalops [options] task")
		fmt.Println("tasks: replay, transfer, goals, beneficiaries")
		flag.PrintDefaults()
		return
	}

	err := config.ReadConfig(*configFile, *secretsFile)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if flag.NArg() == 0 {
		fmt.Println("No task passed in")
		return
	}

	switch flag.Arg(0) {
	case "replay":
		runner = replayrunner.MonthlyReplayRunner{Month: *month, Year: *year}
	case "transfer":
		runner = goalrunner.TransferRunner{
			SourceAccountID:      *from,
			DestinationAccountID: *to,
			BeneficiaryID:        *beneficiary,
			Amount:               *amount,
			MyReference:          *myReference,
			TheirReference:       *theirReference,
			GoalID:               *goalID,
		}

		// a transfer is always a one-shot task
		*singleRun = true
	case "goals":
		runner = goalrunner.ListGoalsRunner{}

		*singleRun = true
	case "beneficiaries":
		runner = goalrunner.ListBeneficiariesRunner{}

		*singleRun = true
	default:
		fmt.Println("No task passed in")
		return
	}

	run()

	if *singleRun {
		return
	}

	c := cron.New()
	c.AddFunc(config.CurrentConfig().UpdateFrequency, run)

	c.Start()

	select {}

}

func run() {
	fmt.Println(time.Now().Format(time.RFC850))
	err := runner.Run()
	if err != nil {
		fmt.Println(err)
	}
}

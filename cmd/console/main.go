package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"kgeyst.com/cicerone/pkg/cicerone/api"
	"kgeyst.com/cicerone/pkg/cicerone/domain"
	"kgeyst.com/cicerone/pkg/common"
)

const help = `:image <path>  identify the place in an image (png, jpg, jpeg)
:name <name>   correct the name of the place
:topics        list predefined questions; ask one with :<topic>
:key           enter another API key
:quit          exit
anything else is a question about the place`

func main() {
	err := mainImpl()
	if err != nil {
		panic(err)
	}
}

func mainImpl() error {
	config, err := common.LoadConfig("config.yaml")
	if err != nil {
		return err
	}
	cicerone, err := api.NewAPI(config, api.NewLogger(config))
	if err != nil {
		return err
	}
	sessionID, err := cicerone.StartSession()
	if err != nil {
		return err
	}
	defer func() {
		_ = cicerone.EndSession(sessionID)
	}()
	rl, err := readline.New("> ")
	if err != nil {
		return err
	}
	defer func() {
		_ = rl.Close()
	}()
	fmt.Println(help)
	err = readCredential(rl, cicerone, sessionID)
	if err != nil {
		return err
	}
	ctx := context.Background()
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or Ctrl+C
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, ":") {
			answer, err := cicerone.Ask(ctx, sessionID, line)
			printResult(answerSections(answer), err)
			continue
		}
		command, argument, _ := strings.Cut(line[1:], " ")
		argument = strings.TrimSpace(argument)
		switch command {
		case "quit":
			return nil
		case "key":
			err := readCredential(rl, cicerone, sessionID)
			if err != nil {
				return err
			}
		case "image":
			file, err := os.Open(argument)
			if err != nil {
				fmt.Println(err)
				continue
			}
			analysis, err := cicerone.AnalyzeImage(ctx, sessionID, argument, file)
			_ = file.Close()
			if err != nil {
				printResult(nil, err)
				continue
			}
			printResult(analysis.Sections, nil)
			fmt.Printf("Identified: %s (%s)\n", analysis.Identity.Name, analysis.Identity.Location)
		case "name":
			printResult(nil, cicerone.ConfirmPlaceName(sessionID, argument))
		case "topics":
			for _, query := range cicerone.CannedQueries() {
				fmt.Printf(":%-14s %s / %s\n", query.Topic, query.Group, query.Title)
			}
		default:
			answer, err := cicerone.AskCanned(ctx, sessionID, command)
			printResult(answerSections(answer), err)
		}
	}
	return nil
}

func readCredential(rl *readline.Instance, cicerone api.API, sessionID string) error {
	credential, err := rl.ReadPassword("API key: ")
	if err != nil {
		return err
	}
	return cicerone.SetCredential(sessionID, string(credential))
}

func answerSections(answer *domain.Answer) []domain.Section {
	if answer == nil {
		return nil
	}
	return answer.Sections
}

func printResult(sections []domain.Section, err error) {
	if err != nil {
		fmt.Println(domain.UserMessage(err))
		return
	}
	for _, section := range sections {
		fmt.Printf("\n== %s ==\n%s\n\n", section.Heading, section.Body)
	}
}

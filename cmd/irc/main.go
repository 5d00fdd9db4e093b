package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mvdan/xurls"
	"github.com/whyrusleeping/hellabot"

	"kgeyst.com/cicerone/pkg/cicerone/api"
	"kgeyst.com/cicerone/pkg/cicerone/domain"
	"kgeyst.com/cicerone/pkg/common"
)

const (
	configKeyAgentName  = "agentName"
	configKeyServerName = "serverName"
	configKeyRoomName   = "roomName"
	// configKeyAPIKey the model provider's key used for every user of the room
	configKeyAPIKey = "apiKey"
)

const (
	// Long answers are cut: IRC servers don't like floods.
	maxReplyLines           = 12
	idleSessionsCheckPeriod = time.Minute
)

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
	agentName := config.GetStringOrDefault(configKeyAgentName, "Cicerone")
	roomName := config.GetStringOrDefault(configKeyRoomName, "CiceroneRoom")
	serverName := config.GetStringOrDefault(configKeyServerName, "irc.euirc.net:6667")
	logger := api.NewLogger(config)
	cicerone, err := api.NewAPI(config, logger)
	if err != nil {
		return err
	}
	queue := common.NewJobQueue(0, logger)
	defer queue.Stop()
	room := newRoom(cicerone, domain.Credential(config.GetString(configKeyAPIKey)))
	stopCleanup := make(chan struct{})
	defer close(stopCleanup)
	go sweepIdleSessions(queue, room, logger, stopCleanup)
	ircBot, err := hbot.NewBot(serverName, agentName)
	if err != nil {
		return err
	}
	var trigger = hbot.Trigger{
		Condition: func(b *hbot.Bot, m *hbot.Message) bool {
			return m.Command == "PRIVMSG" && strings.HasPrefix(strings.ToLower(m.Content), strings.ToLower(agentName))
		},
		Action: func(b *hbot.Bot, m *hbot.Message) bool {
			what := strings.TrimSpace(m.Content[len(agentName):])
			if len(m.To) == 0 || m.To[0] != '#' {
				return false
			}
			what = strings.TrimSpace(strings.TrimLeft(what, ",:"))
			if what == "" {
				return false
			}
			who := strings.TrimSpace(m.From)
			queue.Enqueue(func() error {
				lines, err := room.handle(context.Background(), who, what)
				if err != nil {
					lines = []string{domain.UserMessage(err)}
				}
				for _, line := range lines {
					b.Reply(m, who+": "+line)
				}
				return err
			})
			return true
		},
	}
	ircBot.AddTrigger(trigger)
	ircBot.Channels = []string{"#" + roomName}
	ircBot.Run()
	return nil
}

// room keeps one session per IRC user. Only used from the job queue, so there's no locking.
type room struct {
	cicerone   api.API
	credential domain.Credential
	sessions   map[string]string // nick => session ID
}

func newRoom(cicerone api.API, credential domain.Credential) *room {
	return &room{
		cicerone:   cicerone,
		credential: credential,
		sessions:   make(map[string]string),
	}
}

func (r *room) sessionID(who string) (string, error) {
	sessionID, ok := r.sessions[who]
	if ok {
		_, err := r.cicerone.Session(sessionID)
		if err == nil {
			return sessionID, nil
		}
	}
	sessionID, err := r.cicerone.StartSession()
	if err != nil {
		return "", err
	}
	err = r.cicerone.SetCredential(sessionID, string(r.credential))
	if err != nil {
		return "", err
	}
	r.sessions[who] = sessionID
	return sessionID, nil
}

// removeIdleSessions ends the sessions of users who went quiet and forgets their nicks.
func (r *room) removeIdleSessions() (int, error) {
	count, err := r.cicerone.RemoveIdleSessions()
	if err != nil {
		return 0, err
	}
	for who, sessionID := range r.sessions {
		_, err := r.cicerone.Session(sessionID)
		if errors.Is(err, domain.ErrSessionNotFound) {
			delete(r.sessions, who)
		}
	}
	return count, nil
}

func (r *room) handle(ctx context.Context, who string, what string) ([]string, error) {
	sessionID, err := r.sessionID(who)
	if err != nil {
		return nil, err
	}
	if imageURL := findImageURL(what); imageURL != "" {
		analysis, err := r.cicerone.AnalyzeImageURL(ctx, sessionID, imageURL)
		if err != nil {
			return nil, err
		}
		identified := "identified " + analysis.Identity.Name
		if analysis.Identity.HasLocation() {
			identified += fmt.Sprintf(" (%s)", analysis.Identity.Location)
		}
		lines := []string{identified}
		return append(lines, sectionLines(analysis.Sections)...), nil
	}
	command, argument, _ := strings.Cut(what, " ")
	command = strings.ToLower(command)
	switch {
	case command == "name":
		err := r.cicerone.ConfirmPlaceName(sessionID, argument)
		if err != nil {
			return nil, err
		}
		return []string{"ok, the place is now called " + strings.TrimSpace(argument)}, nil
	case command == "topics":
		var topics []string
		for _, query := range r.cicerone.CannedQueries() {
			topics = append(topics, string(query.Topic))
		}
		return []string{"ask me about: " + strings.Join(topics, ", ")}, nil
	case argument == "" && isTopic(r.cicerone.CannedQueries(), command):
		answer, err := r.cicerone.AskCanned(ctx, sessionID, command)
		if err != nil {
			return nil, err
		}
		return sectionLines(answer.Sections), nil
	}
	answer, err := r.cicerone.Ask(ctx, sessionID, what)
	if err != nil {
		return nil, err
	}
	return sectionLines(answer.Sections), nil
}

// sweepIdleSessions goes through the job queue so that the room is never touched concurrently.
func sweepIdleSessions(queue *common.JobQueue, room *room, logger common.Logger, stop <-chan struct{}) {
	ticker := time.NewTicker(idleSessionsCheckPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			queue.Enqueue(func() error {
				count, err := room.removeIdleSessions()
				if err != nil {
					return fmt.Errorf("failed to remove idle sessions: %w", err)
				}
				if count > 0 {
					logger.Log(fmt.Sprintf("removed %d idle session(s)", count))
				}
				return nil
			})
		}
	}
}

func findImageURL(str string) string {
	for _, foundURL := range xurls.Relaxed.FindAllString(str, -1) {
		if !common.IsImageFormat(foundURL) {
			continue
		}
		if !strings.HasPrefix(foundURL, "http://") && !strings.HasPrefix(foundURL, "https://") {
			foundURL = "https://" + foundURL
		}
		return foundURL
	}
	return ""
}

func isTopic(queries []domain.CannedQuery, command string) bool {
	for _, query := range queries {
		if string(query.Topic) == command {
			return true
		}
	}
	return false
}

func sectionLines(sections []domain.Section) []string {
	var lines []string
	for _, section := range sections {
		lines = append(lines, "["+section.Heading+"]")
		for _, line := range strings.Split(section.Body, "\n") {
			line = strings.TrimSpace(line)
			if line != "" {
				lines = append(lines, line)
			}
		}
	}
	if len(lines) > maxReplyLines {
		lines = append(lines[:maxReplyLines], "...")
	}
	return lines
}

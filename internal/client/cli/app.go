package cli

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/examdesk/internal/client/client"
	"github.com/dmitrijs2005/examdesk/internal/client/config"
	"github.com/dmitrijs2005/examdesk/internal/client/history"
	"github.com/dmitrijs2005/examdesk/internal/netx"
	"github.com/dmitrijs2005/examdesk/internal/rpc"
)

// maxDocumentBytes caps documents fetched over the HTTP edge.
const maxDocumentBytes = 20 << 20

// documentHistory is the local record of saved documents and preferences.
type documentHistory interface {
	RecordDocument(ctx context.Context, d history.Document) error
	Document(ctx context.Context, id string) (*history.Document, error)
	Documents(ctx context.Context) ([]history.Document, error)
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// examWatcher is the part of client.ExamWatcher the CLI drives.
type examWatcher interface {
	Watch(ctx context.Context, today bool, onUpdate func([]rpc.Exam), onEnd func(error)) error
	Active() bool
	Stop()
}

type App struct {
	config  *config.Config
	client  client.Client
	watcher examWatcher
	history documentHistory
	reader  *bufio.Reader
	out     io.Writer
	outMu   sync.Mutex

	// exams caches the last listing so attempt can find an exam's end time.
	exams []rpc.Exam

	now    func() time.Time
	sleep  func(time.Duration)
	fetch  func(ctx context.Context, url string) ([]byte, error)
	upload func(ctx context.Context, url, contentType string, data []byte) error
}

func NewApp(c *config.Config) (*App, error) {
	h, err := history.Open(context.Background(), c.HistoryFile)
	if err != nil {
		return nil, err
	}
	gc, err := client.NewExamDeskClient(c.ServerEndpointAddr, c.CallTimeout)
	if err != nil {
		_ = h.Close()
		return nil, err
	}
	return newApp(c, gc, gc.NewExamWatcher(), h, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, cl client.Client, w examWatcher, h documentHistory, in io.Reader, out io.Writer) *App {
	httpClient := &http.Client{Timeout: c.CallTimeout}
	return &App{
		config:  c,
		client:  cl,
		watcher: w,
		history: h,
		reader:  bufio.NewReader(in),
		out:     out,
		now:     time.Now,
		sleep:   time.Sleep,
		fetch: func(ctx context.Context, url string) ([]byte, error) {
			return netx.FetchBytes(ctx, httpClient, url, maxDocumentBytes)
		},
		upload: func(ctx context.Context, url, contentType string, data []byte) error {
			return netx.UploadToPresignedURL(ctx, httpClient, url, contentType, data)
		},
	}
}

// Run checks the server is reachable and starts the REPL. It returns when
// the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if err := a.client.Ping(ctx); err != nil {
		a.warn("Server %s is not reachable: %v", a.config.ServerEndpointAddr, err)
	}
	a.info("Welcome to ExamDesk. Type help for the list of commands.")
	runREPL(ctx, a.commands(), a.client.IsAdmin, a.status, a.reader)
}

func (a *App) Close() {
	a.watcher.Stop()
	_ = a.client.Close()
	_ = a.history.Close()
}

func (a *App) status() string {
	s := "guest"
	if a.client.IsAdmin() {
		s = "admin"
	}
	if a.watcher.Active() {
		s += ", watching"
	}
	return s
}

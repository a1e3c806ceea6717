// Package main implements very simple http client that can be used for testing gitinsight server.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var (
	serverAddr = flag.String("s", "http://localhost:8080", "The server address")
	file       = flag.String("f", "", "Path to pdf résumé")
	repoSort   = flag.String("sort", "", "Repositories sort: stars, updated or name")
	repoType   = flag.String("type", "", "Repositories type: all, sources, forks or archived")
	wait       = flag.Duration("wait", time.Minute, "Max time of waiting for insights")
)

type session struct {
	ID        string   `json:"id"`
	State     string   `json:"state"`
	Usernames []string `json:"usernames"`
	Message   string   `json:"message"`
}

func main() {
	flag.Parse()
	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	client := &http.Client{Timeout: 30 * time.Second}

	sess, err := upload(client, *file)
	if err != nil {
		log.Fatalf("uploading résumé: %v", err)
	}
	log.Printf("session %s: %s, users: %v", sess.ID, sess.State, sess.Usernames)

	q := make(url.Values)
	if *repoSort != "" {
		q.Set("sort", *repoSort)
	}
	if *repoType != "" {
		q.Set("type", *repoType)
	}
	insightsURL := fmt.Sprintf("%s/api/sessions/%s/insights?%s", *serverAddr, sess.ID, q.Encode())

	deadline := time.Now().Add(*wait)
	for time.Now().Before(deadline) {
		body, status, err := get(client, insightsURL)
		if err != nil {
			log.Fatalf("loading insights: %v", err)
		}
		if status == http.StatusAccepted {
			time.Sleep(500 * time.Millisecond)
			continue
		}
		if status != http.StatusOK {
			log.Fatalf("server response error: %d %s", status, body)
		}

		var v interface{}
		if err := jsoniter.Unmarshal(body, &v); err != nil {
			log.Fatalf("decoding response: %v", err)
		}
		b, err := jsoniter.MarshalIndent(v, "", "  ")
		if err != nil {
			log.Fatalf("encoding response to json error: %v", err)
		}
		println(string(b))
		return
	}
	log.Fatal("timeout waiting for insights")
}

func upload(client *http.Client, path string) (*session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="resume"; filename=%q`, filepath.Base(path)))
	h.Set("Content-Type", "application/pdf")
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	resp, err := client.Post(*serverAddr+"/api/resumes", mw.FormDataContentType(), &body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, b)
	}

	var s session
	if err := jsoniter.Unmarshal(b, &s); err != nil {
		return nil, err
	}

	return &s, nil
}

func get(client *http.Client, u string) ([]byte, int, error) {
	resp, err := client.Get(u)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	return b, resp.StatusCode, err
}

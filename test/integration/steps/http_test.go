package steps

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
)

// apiResponse keeps the status and the decoded body. body is the raw text
// when the response is not JSON.
type apiResponse struct {
	status int
	body   any
}

func (s *scenario) theHeaderIsEmpty() error {
	s.headers = map[string]string{}
	s.accessToken = ""
	return nil
}

func (s *scenario) theHeaderContainsTheKeyWith(key, value string) error {
	s.headers[key] = value
	return nil
}

func (s *scenario) expand(text string) string {
	return strings.NewReplacer(
		"{{access_token}}", s.accessToken,
		"{{refresh_token}}", s.refreshToken,
		"{{facility_id}}", s.facilityID.String(),
		"{{submission_id}}", s.submissionID.String(),
	).Replace(text)
}

func (s *scenario) iSendARequestTo(method, path string) error {
	return s.send(method, s.expand(path), nil)
}

func (s *scenario) iSendARequestToWithBody(method, path string, doc *godog.DocString) error {
	var payload io.Reader
	if doc != nil && doc.Content != "" {
		payload = strings.NewReader(s.expand(doc.Content))
	}
	return s.send(method, s.expand(path), payload)
}

func (s *scenario) send(method, path string, payload io.Reader) error {
	req, err := http.NewRequest(method, s.baseURL+path, payload)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.accessToken)
	}
	for key, value := range s.headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	s.response = &apiResponse{status: resp.StatusCode, body: string(raw)}

	var object map[string]any
	if json.NewDecoder(bytes.NewReader(raw)).Decode(&object) == nil {
		s.response.body = object
		s.remember(object)
	}
	return nil
}

// remember picks up ids and tokens from a response so later steps can refer
// to them through placeholders.
func (s *scenario) remember(object map[string]any) {
	if id, err := uuid.Parse(fmt.Sprint(object["id"])); err == nil {
		switch {
		case object["reporting_date"] != nil:
			s.submissionID = id
		case object["code"] != nil:
			s.facilityID = id
		}
	}
	if token, _ := object["access_token"].(string); token != "" {
		s.accessToken = token
	}
	if token, _ := object["refresh_token"].(string); token != "" {
		s.refreshToken = token
	}
}

func (s *scenario) theResponseStatusShouldBe(want int) error {
	if s.response == nil {
		return errors.New("no request was sent")
	}
	if s.response.status != want {
		return fmt.Errorf("expected status %d, got %d: %v", want, s.response.status, s.response.body)
	}
	return nil
}

func (s *scenario) field(path string) (any, error) {
	if s.response == nil {
		return nil, errors.New("no request was sent")
	}
	value, ok := lookupPath(s.response.body, strings.Split(path, "."))
	if !ok {
		return nil, fmt.Errorf("field %q not found in %v", path, s.response.body)
	}
	return value, nil
}

func (s *scenario) theResponseFieldShouldBe(path, want string) error {
	value, err := s.field(path)
	if err != nil {
		return err
	}
	want = s.expand(want)
	if got := fmt.Sprint(value); got != want {
		return fmt.Errorf("field %q: expected %q, got %q", path, want, got)
	}
	return nil
}

func (s *scenario) theResponseFieldShouldExist(path string) error {
	_, err := s.field(path)
	return err
}

// lookupPath walks objects by key and arrays by index. A JSON null counts as
// missing.
func lookupPath(node any, path []string) (any, bool) {
	if node == nil {
		return nil, false
	}
	if len(path) == 0 {
		return node, true
	}
	switch v := node.(type) {
	case map[string]any:
		return lookupPath(v[path[0]], path[1:])
	case []any:
		i, err := strconv.Atoi(path[0])
		if err != nil || i < 0 || i >= len(v) {
			return nil, false
		}
		return lookupPath(v[i], path[1:])
	}
	return nil, false
}

func (s *scenario) theDbShouldContainObjectsInTheTable(want int, table string) error {
	return s.expectRows(want, table, nil)
}

func (s *scenario) theDbShouldContainObjectsInWithTheValues(want int, table string, doc *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(s.expand(doc.Content)), &criteria); err != nil {
		return fmt.Errorf("criteria: %w", err)
	}
	return s.expectRows(want, table, criteria)
}

func (s *scenario) expectRows(want int, table string, criteria map[string]any) error {
	got, err := s.store.Count(table, criteria)
	if err != nil {
		return err
	}
	if got != int64(want) {
		return fmt.Errorf("expected %d rows in %s matching %v, got %d", want, table, criteria, got)
	}
	return nil
}

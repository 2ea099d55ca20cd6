package utils

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"hospital-service/internal/pkg/constvars"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

var (
	ulidMu      sync.Mutex
	ulidEntropy = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.New().String()
}

// GenerateInvoiceNumber returns a sortable, unique invoice number.
func GenerateInvoiceNumber() string {
	ulidMu.Lock()
	defer ulidMu.Unlock()
	return constvars.InvoiceNumberPrefix + ulid.MustNew(ulid.Timestamp(time.Now()), ulidEntropy).String()
}

func GenerateAttachmentObjectName(recordID, fileName string) string {
	timestamp := time.Now().UTC().Format("20060102_150405")
	extension := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("medical-records/%s/%s_%s%s", recordID, timestamp, uuid.New().String(), extension)
}

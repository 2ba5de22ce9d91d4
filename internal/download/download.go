package download

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"dexrr/internal/domain"
	"dexrr/internal/files"
	"dexrr/internal/sharedhttp"

	"github.com/avast/retry-go"
)

// Chapter fetches every page of a resolved chapter through the source and
// packs them into a CBZ archive or a PDF. Long-strip content gets its
// off-width filler pages removed during archiving.
func Chapter(ctx context.Context, contentPath string, src domain.Source, pages []domain.PageDescriptor, asPDF, longStrip bool) error {
	var wg sync.WaitGroup

	temp, err := os.MkdirTemp("", "dexrr-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(temp)

	for _, page := range pages {
		page := page
		wg.Add(1)

		go func() {
			defer wg.Done()

			filenameNoExt := filepath.Join(temp, fmt.Sprintf("%03d", page.Index+1))

			if err := singlePage(ctx, src, page, filenameNoExt); err != nil {
				fmt.Printf("error downloading page %d: %q\n", page.Index, err)
				return
			}
		}()
	}
	wg.Wait()

	if asPDF {
		return files.CreatePDF(temp, contentPath)
	}

	return files.CreateCbzArchive(temp, contentPath, longStrip)
}

// singlePage downloads a single page image, retrying transient failures
func singlePage(ctx context.Context, src domain.Source, page domain.PageDescriptor, filenameNoExt string) error {
	retryErr := retry.Do(func() error {
		img, err := src.FetchPageImage(ctx, page)
		if err != nil {
			var httpErr *domain.HTTPError
			if errors.As(err, &httpErr) {
				if checkErr := sharedhttp.CheckStatusCode(httpErr.Status); checkErr != nil {
					return checkErr
				}
			}

			return err
		}

		filename, err := appendImageExtension(img.ContentType, filenameNoExt)
		if err != nil {
			return retry.Unrecoverable(err)
		}

		out, err := os.Create(filename)
		if err != nil {
			return err
		}
		defer out.Close()

		readBuf := bytes.NewReader(img.Data)
		writeBuf := bufio.NewWriter(out)
		defer writeBuf.Flush()

		if _, err := readBuf.WriteTo(writeBuf); err != nil {
			return err
		}

		return nil
	},
		retry.Delay(time.Second*3),
		retry.Attempts(3),
		retry.MaxJitter(time.Second*1),
	)

	return retryErr
}

func appendImageExtension(contentType, filename string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return filename + ".jpg", nil
	case "image/png":
		return filename + ".png", nil
	case "image/gif":
		return filename + ".gif", nil
	case "image/webp":
		return filename + ".webp", nil
	default:
		return filename, fmt.Errorf("unsupported content type: %s", contentType)
	}
}

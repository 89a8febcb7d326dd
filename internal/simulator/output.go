package simulator

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/monxcode/GeoSense-Udaipur/internal/cloudwriter"
	"github.com/monxcode/GeoSense-Udaipur/internal/models"
	"github.com/monxcode/GeoSense-Udaipur/internal/output"
	"github.com/monxcode/GeoSense-Udaipur/internal/simulator/producers"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

// OutputDestination receives every serialized event the simulation
// emits, keyed by topic.
type OutputDestination interface {
	WriteMessage(topic string, msg []byte) error
	Close() error
}

// NewOutputDestination picks the sink for the configured output
// format and destination. Kafka wins over file formats when enabled.
func NewOutputDestination(ctx context.Context, config *models.Config) (OutputDestination, error) {
	if config.KafkaEnabled {
		return producers.NewSaramaProducer(config)
	}
	if config.OutputFormat == models.OutputPostgres {
		return output.NewPostgresOutput(ctx, config.PostgresDSN)
	}
	if config.OutputPath != "" {
		switch config.OutputFormat {
		case models.OutputParquet:
			return NewParquetOutput(ctx, config)
		case models.OutputJSON:
			return NewJSONOutput(config.OutputPath, config.OutputFolder), nil
		case models.OutputCSV:
			return NewCSVOutput(config.OutputPath, config.OutputFolder), nil
		case models.OutputConsole, "":
			return &ConsoleOutput{}, nil
		default:
			return nil, fmt.Errorf("unsupported output format: %s", config.OutputFormat)
		}
	}
	return &ConsoleOutput{}, nil
}

// partitionPath buckets an event into an hour partition based on its
// own timestamp field.
func partitionPath(msg []byte) (map[string]interface{}, string, error) {
	var event map[string]interface{}
	if err := json.Unmarshal(msg, &event); err != nil {
		return nil, "", err
	}
	timestamp, ok := event["timestamp"].(float64)
	if !ok {
		return nil, "", fmt.Errorf("invalid timestamp")
	}
	eventTime := time.Unix(int64(timestamp), 0)
	year, month, day := eventTime.Date()
	hour := eventTime.Hour()
	return event, fmt.Sprintf("year=%d/month=%02d/day=%02d/hour=%02d", year, month, day, hour), nil
}

type ConsoleOutput struct{}

func (c *ConsoleOutput) WriteMessage(topic string, msg []byte) error {
	out := fmt.Sprintf("[%s] %s\n", topic, string(msg))

	_, err := os.Stdout.Write([]byte(out))
	if err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}

	// Try to sync, but don't return an error if it fails
	_ = os.Stdout.Sync()

	return nil
}

func (c *ConsoleOutput) Close() error { return nil }

// partitionedFiles keeps one open file per topic and hour partition,
// created lazily under basePath/folder/topic/partition/name.
type partitionedFiles struct {
	basePath string
	folder   string
	name     string
	open     map[string]*os.File
}

func newPartitionedFiles(basePath, folder, name string) *partitionedFiles {
	return &partitionedFiles{basePath: basePath, folder: folder, name: name, open: make(map[string]*os.File)}
}

// fileFor returns the open file for the partition, creating directory
// and file on first use. The second result reports whether this call
// created it.
func (p *partitionedFiles) fileFor(topic, partition string) (*os.File, bool, error) {
	key := topic + "/" + partition
	if file, ok := p.open[key]; ok {
		return file, false, nil
	}
	dir := filepath.Join(p.basePath, p.folder, topic, partition)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, false, err
	}
	file, err := os.Create(filepath.Join(dir, p.name))
	if err != nil {
		return nil, false, err
	}
	p.open[key] = file
	return file, true, nil
}

func (p *partitionedFiles) Close() error {
	var firstErr error
	for _, file := range p.open {
		if err := file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// JSONOutput appends events as newline delimited JSON, one file per
// topic and hour.
type JSONOutput struct {
	files *partitionedFiles
}

func NewJSONOutput(basePath, folder string) *JSONOutput {
	return &JSONOutput{files: newPartitionedFiles(basePath, folder, "data.json")}
}

func (j *JSONOutput) WriteMessage(topic string, msg []byte) error {
	event, partition, err := partitionPath(msg)
	if err != nil {
		return err
	}
	file, _, err := j.files.fileFor(topic, partition)
	if err != nil {
		return err
	}
	line, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = file.Write(append(line, '\n'))
	return err
}

func (j *JSONOutput) Close() error {
	return j.files.Close()
}

// CSVOutput writes one CSV file per topic and hour. Column order is
// the sorted key set of the first event in each file; later events
// missing a column leave it blank.
type CSVOutput struct {
	files   *partitionedFiles
	writers map[string]*csv.Writer
	headers map[string][]string
}

func NewCSVOutput(basePath, folder string) *CSVOutput {
	return &CSVOutput{
		files:   newPartitionedFiles(basePath, folder, "data.csv"),
		writers: make(map[string]*csv.Writer),
		headers: make(map[string][]string),
	}
}

func (c *CSVOutput) WriteMessage(topic string, msg []byte) error {
	event, partition, err := partitionPath(msg)
	if err != nil {
		return err
	}
	file, created, err := c.files.fileFor(topic, partition)
	if err != nil {
		return err
	}

	key := topic + "/" + partition
	w, ok := c.writers[key]
	if !ok {
		w = csv.NewWriter(file)
		c.writers[key] = w
	}
	if created {
		headers := make([]string, 0, len(event))
		for k := range event {
			headers = append(headers, k)
		}
		sort.Strings(headers)
		c.headers[key] = headers
		if err := w.Write(headers); err != nil {
			return err
		}
	}

	row := make([]string, len(c.headers[key]))
	for i, header := range c.headers[key] {
		if value, ok := event[header]; ok {
			row[i] = fmt.Sprintf("%v", value)
		}
	}
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func (c *CSVOutput) Close() error {
	for _, w := range c.writers {
		w.Flush()
		if err := w.Error(); err != nil {
			return err
		}
	}
	return c.files.Close()
}

type ParquetOutput struct {
	basePath           string
	folder             string
	mu                 sync.Mutex
	writers            map[string]*writer.ParquetWriter
	files              map[string]source.ParquetFile
	cloudWriterFactory cloudwriter.CloudWriterFactory
	cloudBucketName    string
}

func NewParquetOutput(ctx context.Context, config *models.Config) (*ParquetOutput, error) {
	p := &ParquetOutput{
		basePath: config.OutputPath,
		folder:   config.OutputFolder,
		writers:  make(map[string]*writer.ParquetWriter),
		files:    make(map[string]source.ParquetFile),
	}

	if config.OutputDestination != models.DestinationLocal && config.OutputDestination != "" {
		switch config.CloudStorage.Provider {
		case "s3":
			factory, err := cloudwriter.NewS3WriterFactory(ctx, config.CloudStorage.Region)
			if err != nil {
				return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
			}
			p.cloudWriterFactory = factory
			p.cloudBucketName = config.CloudStorage.BucketName
		default:
			return nil, fmt.Errorf("unsupported cloud storage provider: %s", config.CloudStorage.Provider)
		}
	}

	p.cleanup()
	return p, nil
}

func (p *ParquetOutput) WriteMessage(topic string, msg []byte) error {
	_, partition, err := partitionPath(msg)
	if err != nil {
		return err
	}

	writerKey := topic + "/" + partition
	p.mu.Lock()
	defer p.mu.Unlock()

	pw, ok := p.writers[writerKey]
	if !ok {
		pw, err = p.createNewWriter(writerKey, topic, partition)
		if err != nil {
			return fmt.Errorf("failed to create new writer: %w", err)
		}
	}

	// decode into the topic's event struct so rows match the schema
	event, err := models.NewEventForTopic(topic)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(msg, event); err != nil {
		return err
	}
	if err := pw.Write(event); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	return nil
}

func (p *ParquetOutput) createNewWriter(writerKey, topic, partition string) (*writer.ParquetWriter, error) {
	var fw source.ParquetFile
	if p.cloudWriterFactory != nil {
		objectPath := filepath.Join(p.folder, topic, partition, "data.parquet")
		cw, err := p.cloudWriterFactory.NewWriter(p.cloudBucketName, objectPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud file writer: %w", err)
		}
		fw = NewCloudParquetFile(cw)
	} else {
		dir := filepath.Join(p.basePath, p.folder, topic, partition)
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, err
		}
		lw, err := local.NewLocalFileWriter(filepath.Join(dir, "data.parquet"))
		if err != nil {
			return nil, fmt.Errorf("failed to create local file writer: %w", err)
		}
		fw = lw
	}

	// the writer builds both the schema handler and the file footer
	// from the struct; setting SchemaHandler afterwards leaves the
	// footer empty
	event, err := models.NewEventForTopic(topic)
	if err != nil {
		return nil, err
	}
	pw, err := writer.NewParquetWriter(fw, event, 4)
	if err != nil {
		return nil, fmt.Errorf("failed to create ParquetWriter: %w", err)
	}

	p.writers[writerKey] = pw
	p.files[writerKey] = fw
	return pw, nil
}

// cleanup removes parquet files left behind by a previous run so a
// restart does not append to stale partitions.
func (p *ParquetOutput) cleanup() {
	fullPath := filepath.Join(p.basePath, p.folder)
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return
	}
	err := filepath.Walk(fullPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".parquet" {
			if err := os.Remove(path); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Error cleaning up Parquet files: %v", err)
	}
}

func (p *ParquetOutput) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var lastErr error
	for key, pw := range p.writers {
		if err := pw.WriteStop(); err != nil {
			lastErr = err
			log.Printf("Error closing writer for key %s: %v", key, err)
		}
		if f, ok := p.files[key]; ok {
			if err := f.Close(); err != nil {
				lastErr = err
				log.Printf("Error closing file for key %s: %v", key, err)
			}
		}
	}
	return lastErr
}

// CloudParquetFile adapts a streaming cloud writer to the interface
// the parquet writer expects. Only forward writes are supported.
type CloudParquetFile struct {
	cloudWriter cloudwriter.CloudWriter
	offset      int64
}

func NewCloudParquetFile(cw cloudwriter.CloudWriter) *CloudParquetFile {
	return &CloudParquetFile{cloudWriter: cw}
}

func (c *CloudParquetFile) Open(name string) (source.ParquetFile, error) {
	// cloud objects are implicitly created on first write
	return c, nil
}

func (c *CloudParquetFile) Create(name string) (source.ParquetFile, error) {
	return c, nil
}

func (c *CloudParquetFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		c.offset = offset
	case io.SeekCurrent:
		c.offset += offset
	case io.SeekEnd:
		return 0, fmt.Errorf("seek from end not supported for cloud storage")
	}
	return c.offset, nil
}

func (c *CloudParquetFile) Read(p []byte) (n int, err error) {
	return 0, fmt.Errorf("read not supported for cloud storage")
}

func (c *CloudParquetFile) Write(p []byte) (n int, err error) {
	return c.cloudWriter.Write(p)
}

func (c *CloudParquetFile) Close() error {
	return c.cloudWriter.Close()
}

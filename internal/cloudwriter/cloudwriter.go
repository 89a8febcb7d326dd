// Package cloudwriter abstracts object storage uploads for simulation
// exports. Writers buffer locally and upload on Close, because the
// exported partitions are small and object stores want whole objects.
package cloudwriter

type CloudWriter interface {
	Write(data []byte) (int, error)
	Close() error
}

type CloudWriterFactory interface {
	NewWriter(bucket, objectPath string) (CloudWriter, error)
}

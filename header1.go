package brs

import (
	"github.com/brsio/brs/internal/bstream"
	"github.com/brsio/brs/model"
	"github.com/brsio/brs/model/version"
)

// readHeader1 decodes the Header1 section: map name, author, a
// description, the distinct host user (since version 8), the save
// timestamp (since version 4), and the advisory brick count.
func readHeader1(br *bstream.ByteReader, caps version.Capabilities) (model.Header1, error) {
	var h model.Header1
	var err error

	if h.Map, err = br.ReadString(); err != nil {
		return h, err
	}
	if h.Author.Name, err = br.ReadString(); err != nil {
		return h, err
	}
	if h.Description, err = br.ReadString(); err != nil {
		return h, err
	}
	if h.Author.ID, err = br.ReadUUID(); err != nil {
		return h, err
	}

	if caps.HasHost {
		var host model.User
		if host.Name, err = br.ReadString(); err != nil {
			return h, err
		}
		if host.ID, err = br.ReadUUID(); err != nil {
			return h, err
		}
		h.Host = &host
	}

	if caps.HasSaveTime {
		raw, err := br.ReadBytes(8)
		if err != nil {
			return h, err
		}
		copy(h.SaveTime[:], raw)
	}

	if h.BrickCount, err = br.ReadUint32(); err != nil {
		return h, err
	}

	return h, nil
}

// writeHeader1 is the inverse of readHeader1. It always writes at the
// current container version's capabilities, regardless of what
// version the SaveData was originally read at.
func writeHeader1(bw *bstream.ByteWriter, h model.Header1, brickCount uint32) error {
	if err := bw.WriteString(h.Map); err != nil {
		return err
	}
	if err := bw.WriteString(h.Author.Name); err != nil {
		return err
	}
	if err := bw.WriteString(h.Description); err != nil {
		return err
	}
	if err := bw.WriteUUID(h.Author.ID); err != nil {
		return err
	}

	host := h.Host
	if host == nil {
		host = &model.User{}
	}
	if err := bw.WriteString(host.Name); err != nil {
		return err
	}
	if err := bw.WriteUUID(host.ID); err != nil {
		return err
	}

	if err := bw.WriteBytes(h.SaveTime[:]); err != nil {
		return err
	}

	return bw.WriteUint32(brickCount)
}

package scene

// Layer is a paint-ordered list of objects. Objects added later are drawn on top.
type Layer struct {
	objects []*Object
}

func (l *Layer) Add(obj *Object) {
	l.objects = append(l.objects, obj)
}

func (l *Layer) Objects() []*Object {
	return l.objects
}

func (l *Layer) Len() int {
	return len(l.objects)
}

// Pack writes every object in insertion order starting at offset.
func (l *Layer) Pack(buf *Buffers, offset int) (int, error) {
	var err error
	for _, obj := range l.objects {
		if offset, err = obj.Pack(buf, offset); err != nil {
			return offset, err
		}
	}
	return offset, nil
}

func (l *Layer) Draw(f Frame) {
	for _, obj := range l.objects {
		obj.Draw(f)
	}
}

func (l *Layer) TextureIDs() []uint32 {
	var ids []uint32
	for _, obj := range l.objects {
		ids = append(ids, obj.TextureIDs()...)
	}
	return ids
}

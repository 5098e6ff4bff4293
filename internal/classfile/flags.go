package classfile

// Class, field, and method access-flag bit positions, straight from the
// compiled format's access_flags tables.
const (
	accPublic       uint16 = 0x0001
	accPrivate      uint16 = 0x0002
	accProtected    uint16 = 0x0004
	accStatic       uint16 = 0x0008
	accFinal        uint16 = 0x0010
	accSuper        uint16 = 0x0020
	accSynchronized uint16 = 0x0020
	accVolatile     uint16 = 0x0040
	accTransient    uint16 = 0x0080
	accInterface    uint16 = 0x0200
	accAbstract     uint16 = 0x0400
	accSynthetic    uint16 = 0x1000
	accAnnotation   uint16 = 0x2000
	accEnum         uint16 = 0x4000
)

// Constant-pool tags (JVMS §4.4).
const (
	tagUtf8               uint8 = 1
	tagInteger            uint8 = 3
	tagFloat              uint8 = 4
	tagLong               uint8 = 5
	tagDouble             uint8 = 6
	tagClass              uint8 = 7
	tagString             uint8 = 8
	tagFieldref           uint8 = 9
	tagMethodref          uint8 = 10
	tagInterfaceMethodref uint8 = 11
	tagNameAndType        uint8 = 12
	tagMethodHandle       uint8 = 15
	tagMethodType         uint8 = 16
	tagDynamic            uint8 = 17
	tagInvokeDynamic      uint8 = 18
	tagModule             uint8 = 19
	tagPackage            uint8 = 20
)
